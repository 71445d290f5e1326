package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(int(slog.LevelInfo), &buf)

	l.Debug("hidden")
	l.Info("shown", "user_id", "alice")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "user_id=alice")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(int(slog.LevelDebug), &buf).With("session_id", "s1")

	l.Debug("hello")

	assert.Contains(t, buf.String(), "session_id=s1")
}
