package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-trading-journal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestContextMiddleware_TagsServiceLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}
	user := uuid.New()

	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: func() string { return "req-42" }}))
	e.Use(RequestContextMiddleware())
	g := e.Group("/api/v1", AuthMiddleware(testSecret))
	g.GET("/boom", func(c echo.Context) error {
		log.InfoContext(c.Request().Context(), "handling")
		return respondError(c, log, errors.New("disk on fire"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, testSecret, user, ""))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		fields := entry.ContextMap()
		assert.Equal(t, "req-42", fields["request_id"], entry.Message)
		assert.Equal(t, user.String(), fields["user_id"], entry.Message)
	}
	assert.Equal(t, "Request failed", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRequestContextMiddleware_NoRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	e := echo.New()
	e.Use(RequestContextMiddleware())
	e.GET("/ping", func(c echo.Context) error {
		log.InfoContext(c.Request().Context(), "pong")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "request_id")
}
