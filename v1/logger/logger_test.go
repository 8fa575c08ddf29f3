package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(tracing bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewWithCore(core, Config{EnableTracing: tracing}), logs
}

func TestNewLoggerClient(t *testing.T) {
	l, err := NewLoggerClient(Config{Level: Debug, ServiceName: "test"})
	require.NoError(t, err)
	assert.True(t, l.Zap.Core().Enabled(zapcore.DebugLevel))

	l, err = NewLoggerClient(Config{Level: "bogus"})
	require.NoError(t, err)
	assert.False(t, l.Zap.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Zap.Core().Enabled(zapcore.InfoLevel))
}

func TestFieldsAndError(t *testing.T) {
	l, logs := newObserved(false)
	l.Warn("schema failed", errors.New("boom"), map[string]interface{}{"path": "/x"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "/x", fields["path"])
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l, logs := newObserved(true)
	l.InfoWithContext(ctx, "inspected", nil)
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])

	l, logs = newObserved(false)
	l.InfoWithContext(ctx, "inspected", nil)
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}
