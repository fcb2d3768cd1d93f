// Package validation checks the shape of incoming explorer requests.
//
// Requests are modelled as gateway-style events (path parameters and query
// string parameters). Each endpoint has a validator that either hands back
// the very same event or rejects it with field-level reasons the HTTP layer
// turns into a 400 response.
package validation
