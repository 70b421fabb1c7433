package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global SugaredLogger instance.
// Initialized with a no-op logger until Initialize is called.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize sets up the global logger with the given log level.
// The "development" level name is accepted as an alias for debug with
// human-readable console output, which is handy when running the demo locally.
func Initialize(level string) error {
	if level == "development" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		Log = logger.Sugar()
		return nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar().With("service", "gw-fintech-demo")
	return nil
}

// Sync flushes buffered log entries. Errors from syncing stderr on some
// platforms are ignored.
func Sync() {
	_ = Log.Sync()
}
