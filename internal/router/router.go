// Package router builds the Echo instance: middleware order, system routes
// and the explorer API routes.
package router

import (
	"github.com/deppfellow/block-explorer/internal/handler"
	"github.com/deppfellow/block-explorer/internal/middleware"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds the New Relic attributes and the
	// context logger, which the request logger and handlers then use.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerExplorerRoutes(router, h)

	return router
}
