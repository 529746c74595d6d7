package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_Setup(t *testing.T) {
	t.Run("mounts groups under the default version", func(t *testing.T) {
		engine := newTestEngine()
		r := NewRouter(engine)
		r.Register(NewDomainGroup("orders", "/orders").
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) }))
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/orders").Code)
		assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodGet, "/orders").Code)
	})

	t.Run("version prefix is configurable", func(t *testing.T) {
		engine := newTestEngine()
		r := NewRouter(engine, WithAPIVersion("v2"))
		r.Register(NewDomainGroup("orders", "/orders").
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) }))
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v2/orders").Code)
		assert.Equal(t, http.StatusNotFound, perform(engine, http.MethodGet, "/api/v1/orders").Code)
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers every HTTP method", func(t *testing.T) {
		engine := newTestEngine()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		r := NewRouter(engine)
		r.Register(NewDomainGroup("items", "/items").
			GET("", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok))
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, http.MethodGet, "/api/v1/items").Code)
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodPost, "/api/v1/items").Code)
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodPut, "/api/v1/items/1").Code)
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodPatch, "/api/v1/items/1").Code)
		assert.Equal(t, http.StatusOK, perform(engine, http.MethodDelete, "/api/v1/items/1").Code)
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := newTestEngine()
		var order []string
		r := NewRouter(engine)
		r.Register(NewDomainGroup("orders", "/orders").
			Use(func(c *gin.Context) {
				order = append(order, "middleware")
				c.Next()
			}).
			GET("", func(c *gin.Context) {
				order = append(order, "handler")
				c.Status(http.StatusOK)
			}))
		r.Setup()

		resp := perform(engine, http.MethodGet, "/api/v1/orders")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, []string{"middleware", "handler"}, order)
	})

	t.Run("middleware can abort", func(t *testing.T) {
		engine := newTestEngine()
		r := NewRouter(engine)
		r.Register(NewDomainGroup("orders", "/orders").
			Use(func(c *gin.Context) {
				c.AbortWithStatus(http.StatusUnauthorized)
			}).
			GET("", func(c *gin.Context) { c.Status(http.StatusOK) }))
		r.Setup()

		assert.Equal(t, http.StatusUnauthorized, perform(engine, http.MethodGet, "/api/v1/orders").Code)
	})

	t.Run("name is kept for diagnostics", func(t *testing.T) {
		assert.Equal(t, "orders", NewDomainGroup("orders", "/orders").Name())
	})
}
