package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return wd
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/todos", cfg.API.URL)
	assert.Zero(t, cfg.API.Timeout, "no timeout by default")
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Encoding)
	assert.Equal(t, ".tada", filepath.Base(cfg.StateDir))
	assert.Equal(t, filepath.Join(cfg.StateDir, "todo.log"), cfg.Logger.File)
}

func TestLoad_EnvOverridesURL(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_API_URL", "https://todos.example.com/todos")
	t.Setenv("TODO_API_TIMEOUT", "5s")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://todos.example.com/todos", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("TODO_API_URL=http://dotenv.test/todos\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TODO_API_URL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.test/todos", cfg.API.URL)
}

func TestLoad_ConfigFile(t *testing.T) {
	wd := isolate(t)
	p := filepath.Join(wd, "custom.yaml")
	body := "api:\n  url: http://file.test/todos\nlogger:\n  level: debug\n  encoding: json\n  file: \"\"\nui:\n  theme: neon\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test/todos", cfg.API.URL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Empty(t, cfg.Logger.File, "an explicit empty log file logs to stderr")
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	wd := isolate(t)
	_, err := Load(filepath.Join(wd, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := Config{
		API:    APIConfig{URL: "http://localhost:8080/todos"},
		Logger: LoggerConfig{Level: "info", Encoding: "console"},
		UI:     UIConfig{Theme: "classic"},
	}
	require.NoError(t, good.Validate())

	cases := map[string]func(*Config){
		"relative url":  func(c *Config) { c.API.URL = "/todos" },
		"ftp url":       func(c *Config) { c.API.URL = "ftp://x/todos" },
		"neg timeout":   func(c *Config) { c.API.Timeout = -time.Second },
		"bad level":     func(c *Config) { c.Logger.Level = "trace" },
		"bad encoding":  func(c *Config) { c.Logger.Encoding = "xml" },
		"unknown theme": func(c *Config) { c.UI.Theme = "solarized" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := good
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
