package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apidir/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apidir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader(zap.NewNop()).Load(context.Background(), "", Overrides{})
	require.NoError(t, err)

	want := Config{
		BaseURL:            domain.DefaultBaseURL,
		RequestTimeout:     domain.DefaultRequestTimeoutSeconds * time.Second,
		SummaryConcurrency: domain.DefaultSummaryConcurrency,
		LogLevel:           domain.DefaultLogLevel,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
baseUrl: https://file.example/v2
requestTimeoutSeconds: 3
summaryConcurrency: 8
metrics:
  listenAddress: 127.0.0.1:9100
log:
  level: debug
`)

	cfg, err := NewLoader(nil).Load(context.Background(), path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "https://file.example/v2", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8, cfg.SummaryConcurrency)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsListenAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "baseUrl: https://file.example\nlog:\n  level: warn\n")

	cfg, err := NewLoader(nil).Load(context.Background(), path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://file.example", cfg.BaseURL)

	t.Setenv("APIDIR_BASE_URL", "https://env.example")
	cfg, err = NewLoader(nil).Load(context.Background(), path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)

	flag := "https://flag.example"
	cfg, err = NewLoader(nil).Load(context.Background(), path, Overrides{BaseURL: &flag})
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.BaseURL)
}

func TestLoadEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("APIDIR_METRICS_LISTEN_ADDRESS", "0.0.0.0:9999")
	t.Setenv("APIDIR_SUMMARY_CONCURRENCY", "2")

	cfg, err := NewLoader(nil).Load(context.Background(), "", Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.MetricsListenAddress)
	assert.Equal(t, 2, cfg.SummaryConcurrency)
}

func TestLoadExpandsEnvInFile(t *testing.T) {
	t.Setenv("APIDIR_TEST_HOST", "mirror.example")
	path := writeConfig(t, "baseUrl: https://${APIDIR_TEST_HOST}/v2\n")

	cfg, err := NewLoader(nil).Load(context.Background(), path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example/v2", cfg.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "timeout", content: "requestTimeoutSeconds: 0\n"},
		{name: "concurrency", content: "summaryConcurrency: -1\n"},
		{name: "level", content: "log:\n  level: loud\n"},
		{name: "empty base", content: "baseUrl: \"\"\n"},
		{name: "yaml", content: "baseUrl: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Load(context.Background(), writeConfig(t, tt.content), Overrides{})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), Overrides{})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
