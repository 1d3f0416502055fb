package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/neethishnk/hawkcards/pkg/config"
)

func TestInitLoggerDevelopment(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Env: "development"}, Log: config.LogConfig{Level: "debug"}}
	require.NoError(t, InitLogger(cfg))
	assert.NotNil(t, GetLogger())
	assert.True(t, GetLogger().Core().Enabled(zap.DebugLevel))
}

func TestMiddlewareAttachesRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	e := echo.New()
	e.Use(Middleware(base))
	e.GET("/ping", func(c echo.Context) error {
		FromContext(c).Info("inside handler")
		Ctx(c.Request().Context()).Info("inside service")
		return c.NoContent(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, 3, logs.Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "req-42", entry.ContextMap()["request_id"])
	}
	last := logs.All()[2]
	assert.Equal(t, "HTTP Request", last.Message)
	assert.EqualValues(t, http.StatusTeapot, last.ContextMap()["status"])
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, zap.L(), Ctx(context.Background()))
}
