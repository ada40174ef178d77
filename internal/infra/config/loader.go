package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"apidir/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. APIDIR_BASE_URL.
const EnvPrefix = "APIDIR"

// Config is the resolved application configuration.
type Config struct {
	BaseURL              string        `json:"baseUrl" yaml:"baseUrl" toml:"baseUrl"`
	RequestTimeout       time.Duration `json:"requestTimeout" yaml:"requestTimeout" toml:"requestTimeout"`
	SummaryConcurrency   int           `json:"summaryConcurrency" yaml:"summaryConcurrency" toml:"summaryConcurrency"`
	MetricsListenAddress string        `json:"metricsListenAddress" yaml:"metricsListenAddress" toml:"metricsListenAddress"`
	LogLevel             string        `json:"logLevel" yaml:"logLevel" toml:"logLevel"`
}

// Overrides carries command line values. Nil fields are left to the
// environment, the file and the defaults, in that order.
type Overrides struct {
	BaseURL              *string
	MetricsListenAddress *string
	LogLevel             *string
}

type rawConfig struct {
	BaseURL               string     `mapstructure:"baseUrl"`
	RequestTimeoutSeconds int        `mapstructure:"requestTimeoutSeconds"`
	SummaryConcurrency    int        `mapstructure:"summaryConcurrency"`
	Metrics               rawMetrics `mapstructure:"metrics"`
	Log                   rawLog     `mapstructure:"log"`
}

type rawMetrics struct {
	ListenAddress string `mapstructure:"listenAddress"`
}

type rawLog struct {
	Level string `mapstructure:"level"`
}

var envBindings = map[string]string{
	"baseUrl":               "BASE_URL",
	"requestTimeoutSeconds": "REQUEST_TIMEOUT_SECONDS",
	"summaryConcurrency":    "SUMMARY_CONCURRENCY",
	"metrics.listenAddress": "METRICS_LISTEN_ADDRESS",
	"log.level":             "LOG_LEVEL",
}

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config")}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	for key, env := range envBindings {
		_ = v.BindEnv(key, EnvPrefix+"_"+env)
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("baseUrl", domain.DefaultBaseURL)
	v.SetDefault("requestTimeoutSeconds", domain.DefaultRequestTimeoutSeconds)
	v.SetDefault("summaryConcurrency", domain.DefaultSummaryConcurrency)
	v.SetDefault("metrics.listenAddress", "")
	v.SetDefault("log.level", domain.DefaultLogLevel)
}

// Load resolves the configuration. An empty path skips the file.
func (l *Loader) Load(ctx context.Context, path string, overrides Overrides) (Config, error) {
	v := newViper()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, domain.E(domain.CodeInvalidArgument, "load config", "read config", err)
		}
		expanded, missing, err := expandEnv(data)
		if err != nil {
			return Config{}, err
		}
		if len(missing) > 0 {
			l.logger.Warn("missing environment variables in config", zap.String("path", path), zap.Strings("missing", missing))
		}
		if err := v.ReadConfig(bytes.NewReader(expanded)); err != nil {
			return Config{}, domain.E(domain.CodeInvalidArgument, "load config", "parse config", err)
		}
	}

	if overrides.BaseURL != nil {
		v.Set("baseUrl", *overrides.BaseURL)
	}
	if overrides.MetricsListenAddress != nil {
		v.Set("metrics.listenAddress", *overrides.MetricsListenAddress)
	}
	if overrides.LogLevel != nil {
		v.Set("log.level", *overrides.LogLevel)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, domain.E(domain.CodeInvalidArgument, "load config", "decode config", err)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	return normalize(raw)
}

func normalize(raw rawConfig) (Config, error) {
	var errs []string

	baseURL := strings.TrimSpace(raw.BaseURL)
	if baseURL == "" {
		errs = append(errs, "baseUrl is required")
	}
	if raw.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("requestTimeoutSeconds must be > 0 (got %d)", raw.RequestTimeoutSeconds))
	}
	if raw.SummaryConcurrency <= 0 {
		errs = append(errs, fmt.Sprintf("summaryConcurrency must be > 0 (got %d)", raw.SummaryConcurrency))
	}
	level := strings.ToLower(strings.TrimSpace(raw.Log.Level))
	if _, err := zapcore.ParseLevel(level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", raw.Log.Level))
	}
	if len(errs) > 0 {
		return Config{}, domain.InvalidArgumentError("load config", strings.Join(errs, "; "))
	}

	return Config{
		BaseURL:              baseURL,
		RequestTimeout:       time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		SummaryConcurrency:   raw.SummaryConcurrency,
		MetricsListenAddress: strings.TrimSpace(raw.Metrics.ListenAddress),
		LogLevel:             level,
	}, nil
}
