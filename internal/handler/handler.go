// Package handler adapts HTTP requests to the explorer services.
//
// Every endpoint goes through Handle: the request is turned into a
// validation.Event, checked by the route's validator, and only then passed to
// the typed handler function.
package handler
