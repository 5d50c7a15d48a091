package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	defaultCheckTimeout = 5 * time.Second
)

// HealthHandler reports whether the service and its dependencies are
// reachable. Only the checks listed in observability.health_checks run.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is one dependency check of the health response.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth answers 200 when every required check passes and 503
// otherwise. Redis is reported but not required: without it the route
// cache is bypassed and invoice emails are not queued.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]CheckResult{},
	}

	obs := h.server.Config.Observability
	timeout := obs.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	if obs.CheckEnabled("database") {
		result := h.runCheck(c.Request().Context(), &logger, "database", timeout, func(ctx context.Context) error {
			return h.server.DB.Pool.Ping(ctx)
		})
		response.Checks["database"] = result
		if result.Status != statusHealthy {
			response.Status = statusUnhealthy
		}
	}

	if obs.CheckEnabled("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.runCheck(c.Request().Context(), &logger, "redis", timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordHealthCheckError("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	name string,
	timeout time.Duration,
	ping func(ctx context.Context) error,
) CheckResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordHealthCheckError(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return CheckResult{Status: statusUnhealthy, ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return CheckResult{Status: statusHealthy, ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordHealthCheckError(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
