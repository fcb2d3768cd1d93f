package handler

import (
	"strconv"
	"time"

	"github.com/deppfellow/block-explorer/internal/middleware"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler carries the shared application container into concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// logger returns the request-scoped logger set by EnhanceContext. Routes
// mounted without that middleware log through the server logger instead of
// going silent.
func (h Handler) logger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(middleware.LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	if h.server != nil && h.server.Logger != nil {
		return h.server.Logger
	}
	return middleware.GetLogger(c)
}

// HandlerFunc is a typed endpoint that receives an already validated event.
type HandlerFunc[Res any] func(c echo.Context, event *validation.Event) (Res, error)

// ResponseHandler writes a successful result and describes it for tracing.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON. A positive maxAge marks the body as
// publicly cacheable for that long.
type JSONResponseHandler struct {
	status int
	maxAge time.Duration
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	if h.maxAge > 0 {
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(h.maxAge.Seconds())))
	}
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is set by EnhanceTracing.
	if h.maxAge > 0 {
		txn.AddAttribute("response.max_age_s", int(h.maxAge.Seconds()))
	}
}

// handleRequest validates the request event, runs the handler and writes the
// response, logging and tracing each phase.
func handleRequest(
	h Handler,
	c echo.Context,
	validate validation.EventValidator,
	handler func(c echo.Context, event *validation.Event) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := h.logger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	validationStart := time.Now()
	event, err := validation.ValidateEvent(c, validate)
	validationDuration := time.Since(validationStart)
	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	handlerStart := time.Now()
	result, err := handler(c, event)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed endpoint with event validation, logging and tracing.
//
//	router.GET("/blocks/:hash", handler.Handle(h, validation.ValidateBlocksEvent, fn, http.StatusOK))
func Handle[Res any](
	h Handler,
	validate validation.EventValidator,
	handler HandlerFunc[Res],
	status int,
) echo.HandlerFunc {
	return handle(h, validate, handler, JSONResponseHandler{status: status})
}

// HandleImmutable is Handle for resources that never change once they exist.
// Successful responses may be cached by clients and proxies for maxAge.
func HandleImmutable[Res any](
	h Handler,
	validate validation.EventValidator,
	handler HandlerFunc[Res],
	status int,
	maxAge time.Duration,
) echo.HandlerFunc {
	return handle(h, validate, handler, JSONResponseHandler{status: status, maxAge: maxAge})
}

func handle[Res any](h Handler, validate validation.EventValidator, handler HandlerFunc[Res], responseHandler ResponseHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(h, c, validate, func(c echo.Context, event *validation.Event) (interface{}, error) {
			return handler(c, event)
		}, responseHandler)
	}
}
