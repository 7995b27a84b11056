package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// ProfileHandler serves profile reads, updates, and blocks.
type ProfileHandler struct {
	profiles *services.ProfileService
	blocks   *services.BlockService
}

func NewProfileHandler(profiles *services.ProfileService, blocks *services.BlockService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, blocks: blocks}
}

// Me returns the caller's own profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.profiles.GetProfile(userID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Profile retrieved", profile)
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	DisplayName   *string `json:"displayName" binding:"omitempty,max=50"`
	Bio           *string `json:"bio" binding:"omitempty,max=500"`
	SearchGender  *string `json:"searchGender" binding:"omitempty,oneof=male female any"`
	AgeMin        *int    `json:"ageMin" binding:"omitempty,min=18,max=100"`
	AgeMax        *int    `json:"ageMax" binding:"omitempty,min=18,max=100"`
	MaxDistanceKm *int    `json:"maxDistanceKm" binding:"omitempty,min=1,max=500"`
}

// UpdateMe applies partial profile changes.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := h.profiles.UpdateProfile(userID, &services.ProfileUpdate{
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		SearchGender:  req.SearchGender,
		AgeMin:        req.AgeMin,
		AgeMax:        req.AgeMax,
		MaxDistanceKm: req.MaxDistanceKm,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Profile updated", nil)
}

// UpdateLocationRequest carries the caller's current coordinates.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// UpdateLocation records the caller's current position.
func (h *ProfileHandler) UpdateLocation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	var req UpdateLocationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.profiles.UpdateLocation(userID, req.Latitude, req.Longitude); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Location updated", nil)
}

// PublicProfile returns another user's visible profile.
func (h *ProfileHandler) PublicProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.profiles.GetPublicProfile(targetID, &userID)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Profile retrieved", profile)
}

// Block hides the target from the caller's feed and vice versa.
func (h *ProfileHandler) Block(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	if err := h.blocks.BlockUser(userID, targetID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, "User blocked", nil)
}

// Unblock removes a block the caller previously created.
func (h *ProfileHandler) Unblock(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	if err := h.blocks.UnblockUser(userID, targetID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "User unblocked", nil)
}
