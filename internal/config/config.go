package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "TODO"
	defaultAPIURL  = "http://localhost:8080/todos"
	stateDirName   = ".tada"
	configFileName = "config"
)

// Config holds client configuration.
type Config struct {
	API    APIConfig
	Logger LoggerConfig
	UI     UIConfig
	// StateDir holds the log file and saved view preferences.
	StateDir string
}

type APIConfig struct {
	URL     string
	Timeout time.Duration // zero disables the per-request timeout
}

type LoggerConfig struct {
	Level    string
	Encoding string // console or json
	File     string // empty logs to stderr
}

type UIConfig struct {
	Theme string
}

// Load reads, in increasing precedence: defaults, config.yaml (in ., the
// state dir, or the explicit file), a .env file, then TODO_* env vars.
func Load(file string) (*Config, error) {
	// Optional: a missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := defaultStateDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			URL:     v.GetString("api.url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Logger: LoggerConfig{
			Level:    strings.ToLower(v.GetString("logger.level")),
			Encoding: strings.ToLower(v.GetString("logger.encoding")),
			File:     v.GetString("logger.file"),
		},
		UI:       UIConfig{Theme: v.GetString("ui.theme")},
		StateDir: v.GetString("state.dir"),
	}
	if cfg.StateDir == "" {
		dir, err := defaultStateDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = dir
	}
	if !v.IsSet("logger.file") {
		cfg.Logger.File = filepath.Join(cfg.StateDir, "todo.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", defaultAPIURL)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("state.dir", "")
}

func defaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, stateDirName), nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url: %q", c.API.URL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout: %s", c.API.Timeout)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logger.Level)
	}
	if c.Logger.Encoding != "json" && c.Logger.Encoding != "console" {
		return fmt.Errorf("invalid log encoding: %s (valid: json, console)", c.Logger.Encoding)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme: %s (valid: classic, neon, mono)", c.UI.Theme)
	}
	return nil
}
