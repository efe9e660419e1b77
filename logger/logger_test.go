package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Both the package-level wrappers and a logger obtained through L() must
// attribute log lines to the file that called them, not to this package
// or to the wrong frame above it.
func TestCallerAttribution(t *testing.T) {
	if err := InitLogger(zapcore.DebugLevel, ""); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	orig := zapLog
	defer func() { zapLog = orig }()
	zapLog = zapLog.WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core {
		return core
	}))

	Info("via wrapper")
	L().Info("via injected logger")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Caller.File, "logger_test.go") {
			t.Errorf("Entry %q attributed to %s", e.Message, e.Caller.File)
		}
	}
}
