package validation

import (
	"github.com/labstack/echo/v4"
)

// Event is the request as seen by the validators. A nil map means the
// request carried no parameters of that kind at all.
type Event struct {
	HTTPMethod            string
	Path                  string
	Resource              string
	PathParameters        map[string]string
	QueryStringParameters map[string]string
}

// PathParam returns the named path parameter and whether it is present.
// An empty value counts as absent.
func (e *Event) PathParam(name string) (string, bool) {
	return lookup(e.PathParameters, name)
}

// QueryParam returns the named query parameter and whether it is present.
// An empty value counts as absent.
func (e *Event) QueryParam(name string) (string, bool) {
	return lookup(e.QueryStringParameters, name)
}

func lookup(params map[string]string, name string) (string, bool) {
	value, ok := params[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EventFromContext builds an Event from an Echo request. Only the first
// value of a repeated query parameter is kept.
func EventFromContext(c echo.Context) *Event {
	event := &Event{
		HTTPMethod: c.Request().Method,
		Path:       c.Request().URL.Path,
		Resource:   c.Path(),
	}

	if names := c.ParamNames(); len(names) > 0 {
		values := c.ParamValues()
		event.PathParameters = make(map[string]string, len(names))
		for i, name := range names {
			if i < len(values) {
				event.PathParameters[name] = values[i]
			}
		}
	}

	if query := c.QueryParams(); len(query) > 0 {
		event.QueryStringParameters = make(map[string]string, len(query))
		for name := range query {
			event.QueryStringParameters[name] = query.Get(name)
		}
	}

	return event
}
