package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_WritesLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf)
	ctx := context.Background()

	log.Info(ctx, "plan generated", "subject", "Go")
	log.Warn(ctx, "ai fallback", "err", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "plan generated")
	assert.Contains(t, out, "subject=Go")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "err=boom")
}

func TestConsoleLogger_With_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf).With("module", "planner")

	log.Error(context.Background(), "failed", "dangling")

	out := buf.String()
	assert.Contains(t, out, "module=planner")
	assert.Contains(t, out, "!BADKEY=dangling")
}

func TestNew_SelectsImplementation(t *testing.T) {
	var buf bytes.Buffer

	_, ok := New(FormatConsole, &buf).(*ZerologLogger)
	assert.True(t, ok)

	_, ok = New(FormatJSON, &buf).(*SlogLogger)
	assert.True(t, ok)

	_, ok = New("unknown", &buf).(*SlogLogger)
	assert.True(t, ok)

	New(FormatJSON, &buf).Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNop_DoesNothing(t *testing.T) {
	var l Logger = Nop{}
	l.With("a", 1).Info(context.Background(), "ignored")
}
