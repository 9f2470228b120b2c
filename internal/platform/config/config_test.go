package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuradocs/internal/platform/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("NEURADOCS_BACKEND_URL", "")
	t.Setenv("NEURADOCS_TIMEOUT", "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.Backend.BaseURL)
	assert.Equal(t, config.DefaultTimeout, cfg.Backend.Timeout)
	assert.Equal(t, "/extract", cfg.Backend.ExtractPath)
	assert.Equal(t, "/ask", cfg.Backend.AskPath)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuradocs.yaml")
	raw := []byte("backend:\n  base_url: http://docs.internal:9000\n  timeout: 30s\nlog:\n  level: debug\n  format: json\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	t.Setenv("NEURADOCS_TIMEOUT", "5s")
	t.Setenv("NEURADOCS_BACKEND_URL", "")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://docs.internal:9000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/extract", cfg.Backend.ExtractPath, "unset keys keep defaults")
}

func TestLoadRejectsBadTimeoutEnv(t *testing.T) {
	t.Setenv("NEURADOCS_TIMEOUT", "soon")
	_, err := config.Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"ftp scheme":    func(c *config.Config) { c.Backend.BaseURL = "ftp://host" },
		"missing host":  func(c *config.Config) { c.Backend.BaseURL = "http://" },
		"zero timeout":  func(c *config.Config) { c.Backend.Timeout = 0 },
		"relative path": func(c *config.Config) { c.Backend.AskPath = "ask" },
		"log format":    func(c *config.Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
