package repositories

import (
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type SwipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// Get returns the swipe for the ordered (swiper, target) pair, or nil when
// none exists.
func (r *SwipeRepository) Get(swiperID, targetID uuid.UUID) (*models.Swipe, error) {
	var swipe models.Swipe
	result := r.db.Where("swiper_id = ? AND target_id = ?", swiperID, targetID).First(&swipe)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up swipe")
	}

	return &swipe, nil
}

// Record inserts the swipe unless the ordered pair already has one. The unique
// index on (swiper_id, target_id) is the authoritative guard: a duplicate-key
// error from a concurrent insert is resolved by re-reading the winning row.
// The stored swipe is returned along with whether it predated this call.
func (r *SwipeRepository) Record(swipe *models.Swipe) (alreadyExisted bool, stored *models.Swipe, err error) {
	existing, err := r.Get(swipe.SwiperID, swipe.TargetID)
	if err != nil {
		return false, nil, err
	}
	if existing != nil {
		return true, existing, nil
	}

	if err := r.db.Create(swipe).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			winner, getErr := r.Get(swipe.SwiperID, swipe.TargetID)
			if getErr != nil {
				return false, nil, getErr
			}
			if winner == nil {
				return false, nil, errors.New(errors.ErrCodeInternalError, "swipe vanished after duplicate insert")
			}
			return true, winner, nil
		}
		return false, nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to record swipe")
	}

	return false, swipe, nil
}

// SwipedTargetIDs returns the ids of every user the swiper has already acted
// on, for exclusion from the feed.
func (r *SwipeRepository) SwipedTargetIDs(swiperID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.Model(&models.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Pluck("target_id", &ids)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list swiped targets")
	}
	return ids, nil
}
