// Package middleware holds the Echo middleware shared by every route:
// request ids, the request-scoped logger, New Relic tracing, rate limiting,
// request logging and the global error handler.
package middleware
