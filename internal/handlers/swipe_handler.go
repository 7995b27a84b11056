package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// SwipeHandler records swipe decisions.
type SwipeHandler struct {
	swipes *services.SwipeService
}

func NewSwipeHandler(swipes *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipes: swipes}
}

// SwipeRequest represents one swipe decision.
type SwipeRequest struct {
	TargetID  uuid.UUID `json:"targetId" binding:"required"`
	Direction string    `json:"direction" binding:"required,oneof=like pass"`
}

// Swipe records the decision and reports whether it completed a match.
func (h *SwipeHandler) Swipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	var req SwipeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.swipes.ProcessSwipe(userID, req.TargetID, req.Direction)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Swipe recorded", result)
}
