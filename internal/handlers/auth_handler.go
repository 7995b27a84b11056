package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/internal/utils"
)

// AuthHandler handles registration, login, and token management.
type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DisplayName  string `json:"displayName" binding:"required,max=50"`
	BirthDate    string `json:"birthDate" binding:"required"`
	Gender       string `json:"gender" binding:"required,oneof=male female"`
	Bio          string `json:"bio" binding:"omitempty,max=500"`
	SearchGender string `json:"searchGender" binding:"omitempty,oneof=male female any"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		utils.BadRequest(c, "birthDate must be formatted as YYYY-MM-DD")
		return
	}

	user, tokens, err := h.auth.Register(services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		DisplayName:  req.DisplayName,
		BirthDate:    birthDate,
		Gender:       req.Gender,
		Bio:          req.Bio,
		SearchGender: req.SearchGender,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Created(c, "Registration successful", gin.H{
		"userId":      user.ID,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"tokens":      tokens,
	})
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, tokens, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"userId":      user.ID,
		"displayName": user.DisplayName,
		"tokens":      tokens,
	})
}

// RefreshRequest carries the refresh token being rotated or revoked.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	tokens, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Token refreshed", tokens)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.auth.Logout(req.RefreshToken); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "Logged out", nil)
}

// LogoutAll revokes every refresh token of the authenticated user.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "authentication required")
		return
	}

	if err := h.auth.LogoutAll(userID); err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, "All sessions revoked", nil)
}
