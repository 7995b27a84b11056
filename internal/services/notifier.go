package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
)

// Notifier receives fire-and-forget events for delivery over the realtime
// channel. Implementations must not block; delivery is best effort and the
// services never depend on it succeeding.
type Notifier interface {
	MatchCreated(match *models.Match)
	MessageSent(message *models.Message)
	ReadReceipt(matchID, readerID uuid.UUID, messageIDs []uuid.UUID, at time.Time)
}

type noopNotifier struct{}

func (noopNotifier) MatchCreated(*models.Match)                                {}
func (noopNotifier) MessageSent(*models.Message)                               {}
func (noopNotifier) ReadReceipt(uuid.UUID, uuid.UUID, []uuid.UUID, time.Time) {}

// NoopNotifier returns a Notifier that drops every event. Used when the
// realtime hub is not running, and in tests.
func NoopNotifier() Notifier {
	return noopNotifier{}
}
