package repositories

import (
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// GetByID returns the match, or nil when it does not exist.
func (r *MatchRepository) GetByID(matchID uuid.UUID) (*models.Match, error) {
	var match models.Match
	result := r.db.First(&match, "id = ?", matchID)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up match")
	}

	return &match, nil
}

// GetByPair returns the match for the unordered {a, b} pair, or nil.
func (r *MatchRepository) GetByPair(a, b uuid.UUID) (*models.Match, error) {
	low, high := models.CanonicalPair(a, b)

	var match models.Match
	result := r.db.Where("user_low_id = ? AND user_high_id = ?", low, high).First(&match)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up match pair")
	}

	return &match, nil
}

// CreateForPair inserts a match for the unordered {a, b} pair. When both
// sides of a mutual like race here, the unique index on (user_low_id,
// user_high_id) lets exactly one insert through; the loser re-reads and
// returns the winner's row with created=false.
func (r *MatchRepository) CreateForPair(a, b uuid.UUID) (match *models.Match, created bool, err error) {
	low, high := models.CanonicalPair(a, b)

	candidate := &models.Match{UserLowID: low, UserHighID: high}
	if err := r.db.Create(candidate).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			winner, getErr := r.GetByPair(a, b)
			if getErr != nil {
				return nil, false, getErr
			}
			if winner == nil {
				return nil, false, errors.New(errors.ErrCodeInternalError, "match vanished after duplicate insert")
			}
			return winner, false, nil
		}
		return nil, false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create match")
	}

	return candidate, true, nil
}

// ListForUser returns a page of the user's matches with messages preloaded,
// most recently active first. Activity is the latest message time, falling
// back to the match creation time for silent matches.
func (r *MatchRepository) ListForUser(userID uuid.UUID, page, pageSize int) ([]models.Match, error) {
	if page < 1 {
		page = 1
	}

	var matches []models.Match
	result := r.db.
		Preload("Messages").
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("COALESCE((SELECT MAX(sent_at) FROM messages WHERE messages.match_id = matches.id), matches.created_at) DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&matches)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list matches")
	}

	return matches, nil
}

// IsParticipant reports whether userID is one of the match's two users.
func (r *MatchRepository) IsParticipant(matchID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.Model(&models.Match{}).
		Where("id = ? AND (user_low_id = ? OR user_high_id = ?)", matchID, userID, userID).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check match participant")
	}

	return count > 0, nil
}

// DeleteCascade removes the match, its messages, and both directional swipes
// between the two participants in one transaction. Partial deletion is never
// left behind.
func (r *MatchRepository) DeleteCascade(match *models.Match) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", match.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Match{}, "id = ?", match.ID).Error; err != nil {
			return err
		}
		if err := tx.Where(
			"(swiper_id = ? AND target_id = ?) OR (swiper_id = ? AND target_id = ?)",
			match.UserLowID, match.UserHighID, match.UserHighID, match.UserLowID,
		).Delete(&models.Swipe{}).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTransactionFailed, "failed to unmatch")
	}

	return nil
}
