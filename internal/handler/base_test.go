package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/block-explorer/internal/config"
	"github.com/deppfellow/block-explorer/internal/middleware"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggingHandler(buf *bytes.Buffer) Handler {
	logger := zerolog.New(buf)
	return NewHandler(&server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	})
}

func echoHash(_ echo.Context, event *validation.Event) (string, error) {
	hash, _ := event.PathParam(validation.ParamHash)
	return hash, nil
}

func TestHandleFallsBackToServerLogger(t *testing.T) {
	var buf bytes.Buffer
	h := newLoggingHandler(&buf)

	e := echo.New()
	e.GET("/blocks/:hash", Handle(h, validation.ValidateBlocksEvent, echoHash, http.StatusOK))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blocks/b1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "handling request")
	assert.Contains(t, buf.String(), `"route":"/blocks/:hash"`)
}

func TestHandlePrefersRequestLogger(t *testing.T) {
	var serverBuf, requestBuf bytes.Buffer
	h := newLoggingHandler(&serverBuf)
	requestLogger := zerolog.New(&requestBuf)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.LoggerKey, &requestLogger)
			return next(c)
		}
	})
	e.GET("/blocks/:hash", HandleImmutable(h, validation.ValidateBlocksEvent, echoHash, http.StatusOK, 0))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blocks/b1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, serverBuf.String())
	assert.Contains(t, requestBuf.String(), "handling request")
	assert.Empty(t, rec.Header().Get(echo.HeaderCacheControl))
}
