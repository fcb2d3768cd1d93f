// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the HTTP layer is funnelled into an HTTPError
// so explorer clients always receive the same JSON envelope, with optional
// field-level details for rejected request parameters.
package errs
