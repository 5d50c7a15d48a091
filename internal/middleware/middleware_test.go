package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/config"
	"github.com/deppfellow/invoice-dashboard/internal/errs"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

func testServer(cfg *config.Config) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: cfg, Logger: &logger}
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestAuthRewrite(t *testing.T) {
	e := echo.New()
	e.Pre(AuthRewrite())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "root:"+c.Request().URL.Path)
	})
	e.GET("/api/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "api:"+c.Request().URL.Path)
	})

	tests := []struct {
		target string
		want   string
	}{
		{"/api/auth", "root:/"},
		{"/api/auth/", "root:/"},
		{"/api/auth/signin", "root:/"},
		{"/api/auth/callback/github?code=abc", "root:/"},
		{"/api/auth?next=/dashboard", "root:/"},
		{"/api/authors", "api:/api/authors"},
		{"/api/other/auth", "api:/api/other/auth"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(e, http.MethodGet, tt.target)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, http.MethodGet, "/")
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", rec.Body.String())
}

func errorResponse(t *testing.T, handlerErr error) (int, errs.HTTPError) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(testServer(&config.Config{})).GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error { return handlerErr })

	rec := serve(e, http.MethodGet, "/boom")

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandler_HTTPError(t *testing.T) {
	status, body := errorResponse(t, errs.NewBadRequestError("bad id", true, nil, nil, nil))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.Equal(t, "bad id", body.Message)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_NoRows(t *testing.T) {
	status, body := errorResponse(t, fmt.Errorf("table:invoices:%w", pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Invoice not found", body.Message)
}

func TestGlobalErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	status, body := errorResponse(t, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, body.Message, "5432")
}

func TestGlobalErrorHandler_UnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(testServer(&config.Config{})).GlobalErrorHandler

	rec := serve(e, http.MethodGet, "/nope")

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", body.Message)
}

func TestRateLimit_DeniesBurst(t *testing.T) {
	s := testServer(&config.Config{Server: config.ServerConfig{RateLimit: 1}})

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.GET("/dashboard/invoices", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewRateLimitMiddleware(s).Limit())

	first := serve(e, http.MethodGet, "/dashboard/invoices")
	second := serve(e, http.MethodGet, "/dashboard/invoices")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	logger := GetLogger(c)

	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
