package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := Load("testdata/config.yml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:test.db?mode=rwc", cfg.Database.DSN)
		assert.Equal(t, time.Hour, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 2*time.Second, cfg.Schedule.SourceDelay)
		assert.True(t, cfg.Schedule.RunOnStart)
		assert.Equal(t, 10, cfg.Fetcher.MaxCandidates)
		assert.Equal(t, 0, cfg.Fetcher.CategoryHops)
		assert.False(t, cfg.Fetcher.RespectRobots)
		assert.InDelta(t, 0.6, cfg.Classifier.CountryThreshold, 1e-9)
		assert.InDelta(t, 0.4, cfg.Classifier.CategoryThreshold, 1e-9)
		assert.True(t, cfg.Classifier.UseSimilarity)
		assert.InDelta(t, 83.0, cfg.Currency.USDINR, 1e-9)
		assert.Equal(t, []string{"https://mercomindia.com/"}, cfg.Sources)
		assert.False(t, cfg.LLM.Enabled())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 6*time.Hour, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 5*time.Second, cfg.Schedule.SourceDelay)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.MaxRuntime)
		assert.Equal(t, 5, cfg.Schedule.MaxConsecutiveFailures)
		assert.Equal(t, 30, cfg.Fetcher.MaxCandidates)
		assert.Equal(t, 3, cfg.Fetcher.CategoryHops)
		assert.True(t, cfg.Fetcher.RespectRobots)
		assert.Equal(t, time.Second, cfg.Extraction.RateLimit)
		assert.Equal(t, 200, cfg.Extraction.MinTextLength)
		assert.InDelta(t, 0.5, cfg.Classifier.CountryThreshold, 1e-9)
		assert.InDelta(t, 0.4, cfg.Classifier.PipelineThreshold, 1e-9)
		assert.InDelta(t, 82.5, cfg.Currency.USDINR, 1e-9)
		assert.Equal(t, "training_profile.json", cfg.Training.Profile)
		assert.Equal(t, DefaultSources, cfg.Sources)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("RS_TEST_KEY", "secret")
		cfg, err := Load(writeConfig(t, "llm:\n  endpoint: http://localhost:1234/v1\n  model: m\n  api_key: ${RS_TEST_KEY}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.LLM.APIKey)
		assert.True(t, cfg.LLM.Enabled())
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config string
		errMsg string
	}{
		{"short server timeout", "server:\n  timeout: 100ms\n", "server timeout must be at least 1 second"},
		{"short interval", "schedule:\n  update_interval: 10s\n", "schedule.update_interval must be at least 1 minute"},
		{"negative hops", "fetcher:\n  category_hops: -1\n", "fetcher.category_hops must be non-negative"},
		{"threshold over 1", "classifier:\n  country_threshold: 1.5\n", "classifier.country_threshold must be between 0 and 1"},
		{"llm model without endpoint", "llm:\n  model: gpt-4o-mini\n", "llm.endpoint and llm.model must be set together"},
		{"llm temperature", "llm:\n  temperature: 3\n", "llm.temperature must be between 0 and 2"},
		{"negative rate", "currency:\n  usd_inr: -1\n", "currency.usd_inr must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.config))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.True(t, cfg.Fetcher.RespectRobots)
	assert.Equal(t, 3, cfg.Fetcher.CategoryHops)
	assert.Equal(t, DefaultSources, cfg.Sources)
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
}
