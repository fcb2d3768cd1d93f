package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultCheckTimeout = 5 * time.Second

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	// Critical checks turn the service unhealthy when they fail. The others
	// only degrade it.
	Critical bool
	Ping     func(ctx context.Context) error
}

type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler probes the dependencies enabled in the observability
// config. The database is critical; Redis only backs the cache and queue.
func NewHealthHandler(s *server.Server) *HealthHandler {
	obs := s.Config.Observability

	var checks []HealthCheck
	if obs.HealthCheckEnabled("database") && s.DB != nil {
		checks = append(checks, HealthCheck{
			Name:     "database",
			Critical: true,
			Ping:     s.DB.Pool.Ping,
		})
	}
	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		checks = append(checks, HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	timeout := obs.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

// CheckHealth serves GET /status: 200 when healthy or degraded, 503 when a
// critical check fails.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := h.logger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	status := statusHealthy

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err == nil {
			checks[check.Name] = map[string]interface{}{
				"status":        statusHealthy,
				"response_time": elapsed.String(),
			}
			logger.Debug().Str("check", check.Name).Dur("response_time", elapsed).Msg("health check passed")
			continue
		}

		checks[check.Name] = map[string]interface{}{
			"status":        statusUnhealthy,
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		if check.Critical {
			status = statusUnhealthy
		} else if status == statusHealthy {
			status = statusDegraded
		}

		logger.Error().
			Err(err).
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(check.Name, elapsed, err)
	}

	response := map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	if err := c.JSON(code, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]interface{}{
			"check_type":       check,
			"operation":        "health_check",
			"error_type":       check + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		},
	)
}
