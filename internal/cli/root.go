package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/gateway"
	"github.com/idilsaglam/tada/internal/logger"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/prefs"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// App carries root flags and what PersistentPreRunE builds from them.
type App struct {
	ConfigFile string
	APIURL     string
	Theme      string

	cfg    *config.Config
	log    *zap.Logger
	client *gateway.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Browse and edit a remote todo collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todo

  # Scriptable commands
  todo ls --sort title --order desc -q milk
  todo add --title "Buy milk" --due 2025-03-01
  todo edit todo-1 --title "Buy oat milk" --due 2025-03-02
  todo rm todo-1
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.log != nil {
				_ = app.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive list.
			return runTUI(cmd.Context(), app)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err: err}
	})

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Config file (default: ./config.yaml or ~/.tada/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Todo collection URL (overrides api.url and TODO_API_URL)")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Output theme (classic|neon|mono)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))

	return cmd
}

// Execute runs the root command and returns the exit code, printing any
// error to stderr.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		ui.Fail(cmd.ErrOrStderr(), err.Error())
	}
	return ExitCode(err)
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigFile)
	if err != nil {
		return usageError{err: err}
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.URL = app.APIURL
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = app.Theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}
	ui.SetTheme(cfg.UI.Theme)

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	app.cfg = cfg
	app.log = log
	app.client = gateway.NewClient(cfg.API.URL, gateway.WithTimeout(cfg.API.Timeout))
	log.Debug("client configured",
		zap.String("command", cmd.CommandPath()),
		zap.String("api_url", app.client.BaseURL()),
		zap.Duration("timeout", cfg.API.Timeout),
	)
	return nil
}

// savedQuery is the default query with the remembered ordering applied.
func (app *App) savedQuery() model.ListQuery {
	p, err := prefs.Load(app.cfg.StateDir)
	if err != nil {
		app.log.Warn("load preferences failed", zap.Error(err))
	}
	return p.Apply(model.DefaultQuery())
}

func runTUI(ctx context.Context, app *App) error {
	return tui.Run(ctx, tui.Options{
		Gateway:  app.client,
		Logger:   app.log,
		Query:    app.savedQuery(),
		StateDir: app.cfg.StateDir,
	})
}
