package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/config"
	"apidir/internal/ui"
)

func directoryServer(t *testing.T, providers string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/providers.json":
			_, _ = w.Write([]byte(providers))
		case "/a.com.json":
			_, _ = w.Write([]byte(`{"apis":{"a.com":{"info":{"title":"A"},"swaggerUrl":"https://a.com/swagger.json"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testSettings(baseURL string) Settings {
	return Settings{Config: config.Config{
		BaseURL:            baseURL,
		RequestTimeout:     time.Second,
		SummaryConcurrency: 2,
		LogLevel:           "info",
	}}
}

func TestInitializeApplication(t *testing.T) {
	server := directoryServer(t, `{"data":["a.com"]}`)

	application, err := InitializeApplication(context.Background(), testSettings(server.URL), LoggingConfig{Logger: zap.NewNop()})
	require.NoError(t, err)

	ids, err := application.Directory().ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProviderID{"a.com"}, ids)
	assert.NotNil(t, application.Gateway())
	assert.NotNil(t, application.Opener())

	var buf bytes.Buffer
	require.NoError(t, application.DumpMetrics(&buf))
	assert.Contains(t, buf.String(), "apidir_fetch_total")
}

func TestInitializeApplicationRejectsBadBaseURL(t *testing.T) {
	_, err := InitializeApplication(context.Background(), testSettings("ftp://nowhere"), LoggingConfig{Logger: zap.NewNop()})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	settings := testSettings("https://example.com")
	settings.Config.LogLevel = "warn"

	logger, err := NewLogger(settings, LoggingConfig{Output: &buf})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"logger":"app"`)

	settings.Config.LogLevel = "loud"
	_, err = NewLogger(settings, LoggingConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSessionUsesApplicationDirectory(t *testing.T) {
	server := directoryServer(t, `{"data":["a.com"]}`)
	application, err := InitializeApplication(context.Background(), testSettings(server.URL), LoggingConfig{Logger: zap.NewNop()})
	require.NoError(t, err)

	session := application.NewSession(nil, nil)
	session.Start(context.Background(), ui.DetailRoute("a.com"))
	defer session.Close()
	session.Wait()

	state := session.Detail().State()
	require.Equal(t, ui.DetailLoaded, state.Status)
	assert.Equal(t, "A", state.Descriptor.Info.Title)
}

func TestReloadConfigSwapsBaseURL(t *testing.T) {
	first := directoryServer(t, `{"data":["first.com"]}`)
	second := directoryServer(t, `{"data":["second.com"]}`)
	path := filepath.Join(t.TempDir(), "apidir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseUrl: "+first.URL+"\n"), 0o600))

	settings := testSettings(first.URL)
	settings.ConfigPath = path
	application, err := InitializeApplication(context.Background(), settings, LoggingConfig{Logger: zap.NewNop()})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("baseUrl: "+second.URL+"\n"), 0o600))
	require.NoError(t, application.ReloadConfig(context.Background()))

	ids, err := application.Directory().ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProviderID{"second.com"}, ids)
	assert.Equal(t, first.URL, application.Config().BaseURL)
}

func TestReloadConfigKeepsFlagOverride(t *testing.T) {
	pinned := directoryServer(t, `{"data":["pinned.com"]}`)
	other := directoryServer(t, `{"data":["other.com"]}`)
	path := filepath.Join(t.TempDir(), "apidir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseUrl: "+other.URL+"\n"), 0o600))

	settings := testSettings(pinned.URL)
	settings.ConfigPath = path
	flag := pinned.URL
	settings.Overrides = config.Overrides{BaseURL: &flag}
	application, err := InitializeApplication(context.Background(), settings, LoggingConfig{Logger: zap.NewNop()})
	require.NoError(t, err)

	require.NoError(t, application.ReloadConfig(context.Background()))

	ids, err := application.Directory().ListProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProviderID{"pinned.com"}, ids)
}
