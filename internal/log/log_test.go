package log

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLogLevel("not-a-level"); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestCreateLoggerWithLumberjackWritesFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "ai-z.log")

	logger := CreateLoggerWithLumberjack(logFile, 1, zapcore.InfoLevel)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Infow("hello", "k", "v")
	_ = logger.Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected non-empty log file")
	}
}

func TestCreateLoggerStderrWhenFileEmpty(t *testing.T) {
	logger := CreateLogger(zapcore.DebugLevel, "")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
