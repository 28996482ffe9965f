package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/keycache"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("hidden", nil)
	l.Info("key config loaded", keycache.Fields{"source": "cache.xml", "items": 3})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered: %s", out)
	}
	if !strings.Contains(out, `msg="key config loaded" items=3 source=cache.xml`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
