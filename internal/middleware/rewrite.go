package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AuthRewriteRules send every request under /api/auth to the root page.
// Rules match the whole raw request URI, query string included.
var AuthRewriteRules = map[string]string{
	"^/api/auth":   "/",
	"^/api/auth/*": "/",
	"^/api/auth?*": "/",
}

// AuthRewrite rewrites /api/auth and everything below it to "/". It must be
// registered with Echo#Pre so it runs before routing.
func AuthRewrite() echo.MiddlewareFunc {
	return middleware.RewriteWithConfig(middleware.RewriteConfig{
		Rules: AuthRewriteRules,
	})
}
