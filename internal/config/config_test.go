package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data/fear_greed_index.csv", cfg.Data.SentimentFile)
	assert.Equal(t, "data/historical_data.csv", cfg.Data.TradesFile)
	assert.Equal(t, "Asia/Kolkata", cfg.Data.SourceTimezone)
	assert.Equal(t, "fear", cfg.Data.FearKeyword)
	assert.Equal(t, "greed", cfg.Data.GreedKeyword)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SENTI_SERVER_PORT", "9999")
	t.Setenv("SENTI_DATA_SOURCE_TIMEZONE", "UTC")
	t.Setenv("SENTI_DATA_SENTIMENT_FILE", "/tmp/fg.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Data.SourceTimezone)
	assert.Equal(t, "/tmp/fg.csv", cfg.Data.SentimentFile)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("SENTI_CONFIG_FILE", path)
	// With the env left at its zero value the file fills the port.
	t.Setenv("SENTI_SERVER_PORT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SENTI_SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{Port: 8080},
		Data: DataConfig{
			SentimentFile:  "a.csv",
			TradesFile:     "b.csv",
			SourceTimezone: "Asia/Kolkata",
			FearKeyword:    "fear",
			GreedKeyword:   "greed",
		},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"missing sentiment file", func(c *Config) { c.Data.SentimentFile = "" }, "sentiment file"},
		{"missing trades file", func(c *Config) { c.Data.TradesFile = "" }, "trades file"},
		{"missing timezone", func(c *Config) { c.Data.SourceTimezone = "" }, "timezone"},
		{"missing keyword", func(c *Config) { c.Data.GreedKeyword = "" }, "regime keywords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeConfigs_EnvWins(t *testing.T) {
	fileCfg := Config{
		Server:  ServerConfig{Port: 9090},
		Logging: LoggingConfig{Level: "debug"},
		Data:    DataConfig{SentimentFile: "file.csv", SourceTimezone: "UTC"},
	}
	envCfg := Config{
		Server: ServerConfig{Port: 8080},
		Data:   DataConfig{SentimentFile: "env.csv"},
	}

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 8080, merged.Server.Port)
	assert.Equal(t, "env.csv", merged.Data.SentimentFile)
	// Fields the environment left empty come from the file.
	assert.Equal(t, "debug", merged.Logging.Level)
	assert.Equal(t, "UTC", merged.Data.SourceTimezone)
}

func TestGetListenAddr(t *testing.T) {
	cfg := Config{Server: ServerConfig{Port: 8080}}
	assert.Equal(t, ":8080", cfg.GetListenAddr())
}
