package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// MatchHandler serves the match list and match lifecycle operations.
type MatchHandler struct {
	matches *services.MatchService
	cfg     *config.Config
}

func NewMatchHandler(matches *services.MatchService, cfg *config.Config) *MatchHandler {
	return &MatchHandler{matches: matches, cfg: cfg}
}

// List returns the caller's matches ordered by most recent activity.
func (h *MatchHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	page, pageSize := pageParams(c, 20, h.cfg.MaxPageSize)

	matches, err := h.matches.ListMatches(userID, page, pageSize)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Matches retrieved", gin.H{
		"matches":  matches,
		"page":     page,
		"pageSize": pageSize,
	})
}

// Details returns a single match. Non-participants get the same
// response as a missing match.
func (h *MatchHandler) Details(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid match id")
		return
	}

	details, err := h.matches.GetMatchDetails(matchID, userID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Match retrieved", details)
}

// Unmatch dissolves a match, removing its messages and the underlying
// swipes so either side may swipe again.
func (h *MatchHandler) Unmatch(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid match id")
		return
	}

	deleted, err := h.matches.Unmatch(matchID, userID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	if !deleted {
		utils.NotFound(c, "match not found")
		return
	}

	utils.Success(c, "Unmatched", nil)
}
