package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	requestID := GetRequestID(ctx)
	assert.Empty(t, requestID)
}

func TestGetUserID_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := GetUserID(ctx)
	assert.Empty(t, userID)
}

func TestContextChaining(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()

	// Chain multiple context enrichments
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeys(t *testing.T) {
	// Verify context keys are unique
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, UserIDKey)
}

// newObservedLogger returns a logger writing JSON to buf at debug level.
func newObservedLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestContextLogger_EnrichesFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, logger, "req-42")
	ctx, _ = WithUserID(ctx, logger, "user-42")
	ctx = WithContext(ctx, logger)

	L(ctx).Info("hello")

	output := buf.String()
	assert.Contains(t, output, "hello")
	assert.Contains(t, output, "req-42")
	assert.Contains(t, output, "user-42")
}

func TestContextLogger_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), logger)
	L(ctx).Info("plain")

	output := buf.String()
	assert.Contains(t, output, "plain")
	assert.NotContains(t, output, "request_id")
	assert.NotContains(t, output, "user_id")
}

func TestContextLogger_NilLoggerFallsBackToNop(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	// Must not panic
	cl.Info("noop")
	cl.Debug("noop")
	cl.Warn("noop")
	cl.Error("noop")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	cl := WithLogger(context.Background(), logger)
	cl.Info("direct")

	assert.Contains(t, buf.String(), "direct")
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	cl := WithLogger(context.Background(), logger).With(zap.String("component", "ledger"))
	cl.Info("tagged")

	output := buf.String()
	assert.Contains(t, output, "tagged")
	assert.Contains(t, output, "ledger")
}

func TestContextLogger_ZapAndSugar(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	cl := WithLogger(context.Background(), logger)
	require.NotNil(t, cl.Zap())
	require.NotNil(t, cl.Sugar())

	cl.Sugar().Infow("sugared", "key", "value")
	assert.Contains(t, buf.String(), "sugared")
}
