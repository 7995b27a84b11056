package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a new message.
func (r *MessageRepository) Create(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create message")
	}
	return nil
}

// ListForMatch returns up to take messages of the match sent before the given
// cutoff (all messages when before is nil), in ascending send order.
func (r *MessageRepository) ListForMatch(matchID uuid.UUID, before *time.Time, take int) ([]models.Message, error) {
	query := r.db.Where("match_id = ?", matchID)
	if before != nil {
		query = query.Where("sent_at < ?", *before)
	}

	var messages []models.Message
	result := query.Order("sent_at DESC").Limit(take).Find(&messages)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to list messages")
	}

	// The window is selected newest-first; flip it for display order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// MarkRead stamps the given messages as read by the viewer. Only messages in
// the match that were sent by the counterpart and are still unread are
// touched; the number updated is returned.
func (r *MessageRepository) MarkRead(matchID, viewerID uuid.UUID, messageIDs []uuid.UUID, readAt time.Time) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}

	result := r.db.Model(&models.Message{}).
		Where("id IN ? AND match_id = ? AND sender_id != ? AND read_at IS NULL",
			messageIDs, matchID, viewerID).
		Update("read_at", readAt)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to mark messages read")
	}

	return result.RowsAffected, nil
}
