package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// FeedHandler serves the discovery feed.
type FeedHandler struct {
	feed *services.FeedService
	cfg  *config.Config
}

func NewFeedHandler(feed *services.FeedService, cfg *config.Config) *FeedHandler {
	return &FeedHandler{feed: feed, cfg: cfg}
}

// List returns nearby candidates matching the caller's preferences.
func (h *FeedHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	radiusKm := queryInt(c, "radiusKm", h.cfg.DefaultRadiusKm)
	if radiusKm < 1 {
		radiusKm = h.cfg.DefaultRadiusKm
	}

	page, pageSize := pageParams(c, 20, h.cfg.MaxPageSize)

	candidates, err := h.feed.GetCandidates(userID, radiusKm, page, pageSize)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Candidates retrieved", gin.H{
		"candidates": candidates,
		"page":       page,
		"pageSize":   pageSize,
	})
}
