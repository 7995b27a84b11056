package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/internal/security"
	"github.com/sparkdate/spark-server/pkg/errors"
)

// MessageService handles the conversation inside a match.
type MessageService struct {
	messages *repositories.MessageRepository
	matches  *MatchService
	notifier Notifier
}

func NewMessageService(messages *repositories.MessageRepository, matches *MatchService, notifier Notifier) *MessageService {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &MessageService{
		messages: messages,
		matches:  matches,
		notifier: notifier,
	}
}

// MessageView is the serialized form of a message.
type MessageView struct {
	ID          uuid.UUID  `json:"id"`
	MatchID     uuid.UUID  `json:"matchId"`
	SenderID    uuid.UUID  `json:"senderId"`
	Content     string     `json:"content,omitempty"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	SentAt      time.Time  `json:"sentAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

func messageView(m *models.Message) MessageView {
	return MessageView{
		ID:          m.ID,
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		PhotoURL:    m.PhotoURL,
		SentAt:      m.SentAt,
		DeliveredAt: m.DeliveredAt,
		ReadAt:      m.ReadAt,
	}
}

// GetMessages returns a window of the conversation in ascending send order.
// A viewer who is not part of the match gets an empty list.
func (s *MessageService) GetMessages(matchID, viewerID uuid.UUID, before *time.Time, take int) ([]MessageView, error) {
	ok, err := s.matches.IsParticipant(matchID, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []MessageView{}, nil
	}

	messages, err := s.messages.ListForMatch(matchID, before, take)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, len(messages))
	for i := range messages {
		views[i] = messageView(&messages[i])
	}

	return views, nil
}

// SendMessage persists a message from senderID into the match. The sender
// must be a participant; an outsider is told the match does not exist.
func (s *MessageService) SendMessage(senderID, matchID uuid.UUID, text, photoURL string) (*MessageView, error) {
	ok, err := s.matches.IsParticipant(matchID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "match not found")
	}

	text = security.SanitizeMessage(text)
	if text == "" && photoURL == "" {
		return nil, errors.New(errors.ErrCodeValidation, "message must have text or a photo")
	}

	now := time.Now().UTC()
	message := &models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  text,
		PhotoURL: photoURL,
		// Delivery is immediate in this implementation.
		DeliveredAt: &now,
	}

	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	s.notifier.MessageSent(message)

	view := messageView(message)
	return &view, nil
}

// MarkRead stamps the given counterpart messages as read and returns how many
// were newly marked.
func (s *MessageService) MarkRead(viewerID, matchID uuid.UUID, messageIDs []uuid.UUID) (int64, error) {
	ok, err := s.matches.IsParticipant(matchID, viewerID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "match not found")
	}

	readAt := time.Now().UTC()
	n, err := s.messages.MarkRead(matchID, viewerID, messageIDs, readAt)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.notifier.ReadReceipt(matchID, viewerID, messageIDs, readAt)
	}

	return n, nil
}
