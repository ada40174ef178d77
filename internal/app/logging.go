package app

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"apidir/internal/domain"
)

// LoggingConfig configures logging wiring.
type LoggingConfig struct {
	// Logger, when set, is used as is.
	Logger *zap.Logger
	// Output receives JSON log lines; stderr when nil.
	Output io.Writer
}

// NewLogger builds the production JSON logger at the configured level.
func NewLogger(settings Settings, logging LoggingConfig) (*zap.Logger, error) {
	if logging.Logger != nil {
		return logging.Logger.Named("app"), nil
	}
	level, err := zapcore.ParseLevel(strings.TrimSpace(settings.Config.LogLevel))
	if err != nil {
		return nil, domain.E(domain.CodeInvalidArgument, "new logger", "invalid log level", err)
	}
	output := logging.Output
	if output == nil {
		output = os.Stderr
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(output)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core, zap.AddCaller()).Named("app"), nil
}
