package evreactor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLogger_FiltersBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, LevelWarn)

	l.Log(LevelInfo, "should be dropped")
	l.Log(LevelError, "should appear", Field{Key: "k", Value: "v"})

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "ERROR")
}

func TestTextLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, LevelError)
	l.Log(LevelInfo, "still dropped")
	assert.Empty(t, buf.String())

	l.SetLevel(LevelInfo)
	l.Log(LevelInfo, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNoOpLogger_Discards(t *testing.T) {
	assert.NotPanics(t, func() {
		NoOpLogger{}.Log(LevelError, "anything", Field{Key: "a", Value: 1})
	})
}

func TestSetLogger_OverridesGlobalDefault(t *testing.T) {
	orig := currentLogger()
	defer SetLogger(orig)

	var buf bytes.Buffer
	SetLogger(NewTextLogger(&buf, LevelDebug))

	logAt(currentLogger(), LevelDebug, "hello")
	assert.True(t, strings.Contains(buf.String(), "hello"))
}

func TestLoggerHandle_FallsBackToGlobalWhenNil(t *testing.T) {
	orig := currentLogger()
	defer SetLogger(orig)

	var buf bytes.Buffer
	SetLogger(NewTextLogger(&buf, LevelDebug))

	var h *loggerHandle
	h.Info("via nil handle")
	assert.Contains(t, buf.String(), "via nil handle")
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}
