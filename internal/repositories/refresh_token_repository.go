package repositories

import (
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a new refresh token.
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create refresh token")
	}
	return nil
}

// GetByHash retrieves a refresh token by its hash.
func (r *RefreshTokenRepository) GetByHash(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	result := r.db.Where("token_hash = ?", tokenHash).First(&token)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "refresh token not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get refresh token")
	}

	return &token, nil
}

// Revoke marks a token unusable. Revoking an already-revoked token is a no-op.
func (r *RefreshTokenRepository) Revoke(tokenID uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", now)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to revoke refresh token")
	}

	return nil
}

// RevokeAllForUser invalidates every live token of the user.
func (r *RefreshTokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to revoke refresh tokens")
	}

	return nil
}

// DeleteExpired removes tokens past their expiry.
func (r *RefreshTokenRepository) DeleteExpired() error {
	result := r.db.Where("expires_at < ?", time.Now().UTC()).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete expired tokens")
	}
	return nil
}
