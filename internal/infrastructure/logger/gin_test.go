package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	engine := gin.New()
	engine.Use(GinMiddleware(zap.New(core)))
	return engine, logs
}

func TestGinMiddleware(t *testing.T) {
	t.Run("success is logged at info", func(t *testing.T) {
		engine, logs := newObservedEngine(t)
		engine.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?debug=1", nil))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zap.InfoLevel, entry.Level)
		assert.Equal(t, "HTTP Request", entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, "/ping", fields["path"])
		assert.Equal(t, "debug=1", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("client errors are logged at warn", func(t *testing.T) {
		engine, logs := newObservedEngine(t)
		engine.GET("/bad", func(c *gin.Context) {
			c.Status(http.StatusBadRequest)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	})

	t.Run("server errors are logged at error", func(t *testing.T) {
		engine, logs := newObservedEngine(t)
		engine.GET("/boom", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("handlers get a request-scoped logger", func(t *testing.T) {
		engine, _ := newObservedEngine(t)
		var scoped *zap.Logger
		engine.GET("/scoped", func(c *gin.Context) {
			scoped = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scoped", nil))

		require.NotNil(t, scoped)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Panic recovered", logs.All()[0].Message)
}

func TestGetGinLogger_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	log := GetGinLogger(c)

	require.NotNil(t, log)
}
