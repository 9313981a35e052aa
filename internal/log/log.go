// Package log provides the process-wide structured logger. It mirrors the
// shape of the teacher daemon's logging package: a package-level
// *zap.SugaredLogger, a level parser accepting the usual zap level names,
// and a constructor that optionally routes output through a rotating file
// via lumberjack instead of stderr.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. Replaced by CreateLogger once CLI
// flags have been parsed; until then it defaults to a sane stderr logger
// so that package init code and early CLI parsing can still log.
var Logger *zap.SugaredLogger = newDefault()

func newDefault() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		// zap's production config is infallible in practice; fall back to
		// a no-op logger rather than panicking at package init.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// ParseLogLevel parses a level name ("debug", "info", "warn", "error",
// "fatal", "panic", "dpanic") into a zapcore.Level. An empty string maps to
// InfoLevel.
func ParseLogLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// CreateLogger builds a SugaredLogger at the given level. When file is
// non-empty, output is written to that path through lumberjack (10MB
// rotation, 5 backups, 28 day retention, compressed) instead of stderr --
// this keeps the TUI's alternate screen buffer free of log noise while the
// program is interactively rendering frames.
func CreateLogger(level zapcore.Level, file string) *zap.SugaredLogger {
	if file == "" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err := cfg.Build()
		if err != nil {
			return zap.NewNop().Sugar()
		}
		return l.Sugar()
	}
	return CreateLoggerWithLumberjack(file, 10, level)
}

// CreateLoggerWithLumberjack builds a SugaredLogger writing JSON-encoded
// entries to file, rotated once it exceeds maxSizeMB.
func CreateLoggerWithLumberjack(file string, maxSizeMB int, level zapcore.Level) *zap.SugaredLogger {
	writer := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
	return zap.New(core).Sugar()
}
