package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/block-explorer/internal/server"
)

// TracingMiddleware wires New Relic into Echo. Everything is a no-op when
// the agent is disabled.
//
// It works in two layers:
//  1. NewRelicMiddleware starts the transaction and puts it in the request context
//  2. EnhanceTracing decorates that transaction with explorer attributes
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts a transaction per request. newrelic.FromContext
// only finds a transaction for routes behind this middleware.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		// Agent disabled: hand the next handler back unwrapped.
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds request attributes and notices handler errors on the
// current transaction. It must run after NewRelicMiddleware and RequestID.
//
// Attributes added:
//   - client ip and user agent
//   - request id, to join traces with logs
//   - every route param as request.param.<name> (hash, term, address)
//   - the final response status
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// nil when the agent is off or the middleware order is wrong.
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			// Route params are what explorer traces are usually filtered by.
			for i, name := range c.ParamNames() {
				if i < len(c.ParamValues()) {
					txn.AddAttribute("request.param."+name, c.ParamValues()[i])
				}
			}

			err := next(c)

			// Noticing the error does not handle it: it is still returned so the
			// global error handler writes the response. nrpkgerrors keeps the
			// pkg/errors stack on the trace.
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			// Only known once the handler has run.
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
