package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/invoice-dashboard/internal/handler"
)

// registerSystemRoutes registers the endpoints outside the dashboard:
// health, docs and their static assets. "/" is the docs UI, which is also
// where /api/auth requests land after the rewrite.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/", h.OpenAPI.ServeOpenAPIUI)
}
