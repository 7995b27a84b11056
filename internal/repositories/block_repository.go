package repositories

import (
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create records a block. Blocking the same user twice is reported as
// ALREADY_EXISTS.
func (r *BlockRepository) Create(block *models.Block) error {
	if err := r.db.Create(block).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeAlreadyExists, "user already blocked")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create block")
	}
	return nil
}

// Delete removes a block the user previously created.
func (r *BlockRepository) Delete(blockerID, targetID uuid.UUID) error {
	result := r.db.Where("blocker_id = ? AND target_id = ?", blockerID, targetID).
		Delete(&models.Block{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete block")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "block not found")
	}

	return nil
}

// BlockedIDs returns every user blocked by or blocking the given user.
func (r *BlockRepository) BlockedIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var blocks []models.Block
	result := r.db.Where("blocker_id = ? OR target_id = ?", userID, userID).Find(&blocks)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list blocks")
	}

	ids := make([]uuid.UUID, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockerID == userID {
			ids = append(ids, b.TargetID)
		} else {
			ids = append(ids, b.BlockerID)
		}
	}

	return ids, nil
}
