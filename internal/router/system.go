package router

import (
	"github.com/deppfellow/block-explorer/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts health and documentation endpoints.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
