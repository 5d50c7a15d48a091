// Package router builds the Echo instance: it registers the middleware
// chain and maps route groups to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

// NewRouter returns the application's HTTP handler.
//
// The auth rewrite runs in Pre, before route lookup. Global middleware
// order matters: the request id must exist before tracing and the request
// logger read it, and the context enhancer must see the New Relic
// transaction.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(middleware.AuthRewrite())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	// The limiter runs ahead of authentication and also counts rejected requests.
	dashboard := router.Group("/dashboard",
		middlewares.RateLimit.Limit(),
		middlewares.Auth.RequireAuth,
	)
	registerDashboardRoutes(dashboard, h)

	return router
}
