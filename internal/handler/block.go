package handler

import (
	"context"

	"github.com/deppfellow/block-explorer/internal/model"
	"github.com/deppfellow/block-explorer/internal/server"
	"github.com/deppfellow/block-explorer/internal/validation"
	"github.com/labstack/echo/v4"
)

type BlockService interface {
	GetBlock(ctx context.Context, hash string) (*model.Block, error)
}

type BlockHandler struct {
	Handler
	blocks BlockService
}

func NewBlockHandler(s *server.Server, blocks BlockService) *BlockHandler {
	return &BlockHandler{
		Handler: NewHandler(s),
		blocks:  blocks,
	}
}

// GetBlock serves GET /blocks/:hash.
func (h *BlockHandler) GetBlock(c echo.Context, event *validation.Event) (*model.Block, error) {
	hash, _ := event.PathParam(validation.ParamHash)
	return h.blocks.GetBlock(c.Request().Context(), hash)
}
