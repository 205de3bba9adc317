// Package transcribe proxies transcript requests to the external provider so
// clients never hold the provider's API key.
package transcribe

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/louenes/lectura/internal/providers/supadata"
	"github.com/louenes/lectura/pkg/sdk"
)

// Fetcher is the provider surface the proxy depends on.
type Fetcher interface {
	Fetch(ctx context.Context, req supadata.Request) (*supadata.Response, error)
}

// Controller handles the transcribe route.
type Controller struct {
	provider Fetcher
	logger   *zap.Logger
}

// NewController creates a transcribe controller.
func NewController(provider Fetcher, logger *zap.Logger) *Controller {
	return &Controller{provider: provider, logger: logger}
}

// Transcribe handles GET requests proxying a transcript fetch. Query
// parameters mirror the provider's: url or videoId (one required), lang,
// chunkSize. Responses are always plain text transcripts.
func (ctrl *Controller) Transcribe(c *gin.Context) {
	req := supadata.Request{
		URL:     c.Query("url"),
		VideoID: c.Query("videoId"),
		Lang:    c.Query("lang"),
		Text:    true,
	}
	if req.URL == "" && req.VideoID == "" {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Either url or videoId query parameter is required", nil).AsGinResponse())
		return
	}
	if size, err := strconv.Atoi(c.Query("chunkSize")); err == nil {
		req.ChunkSize = size
	}

	resp, err := ctrl.provider.Fetch(c.Request.Context(), req)
	if err != nil {
		ctrl.logger.Warn("transcript proxy fetch failed", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Failed to fetch transcript", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Transcript fetched successfully", sdk.TranscribeResponse{
		Content:        resp.Content,
		Lang:           resp.Lang,
		AvailableLangs: resp.AvailableLangs,
	}).AsGinResponse())
}
