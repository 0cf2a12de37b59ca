package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, slog.LevelError, LevelFromEnv())
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	p := Printf{L: New(&buf, slog.LevelInfo, true)}

	p.Debugf("hidden %d", 1)
	p.Infof("simulated %d months", 14)
	p.Warnf("ceiling reached for %s", "snowball")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "simulated 14 months")
	assert.Contains(t, out, "WRN ceiling reached for snowball")
}
