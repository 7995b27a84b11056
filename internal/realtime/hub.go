package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// Event types pushed to connected clients.
const (
	EventMatchCreated = "match.created"
	EventMessageSent  = "message.sent"
	EventMessageRead  = "message.read"
)

// Event is the envelope for every websocket push.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type delivery struct {
	userIDs []uuid.UUID
	data    []byte
}

// Hub tracks connected clients and fans events out to match participants.
// It satisfies services.Notifier, so domain services never touch
// websockets directly.
type Hub struct {
	matches *repositories.MatchRepository

	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliveries chan delivery
}

func NewHub(matches *repositories.MatchRepository) *Hub {
	return &Hub{
		matches:    matches,
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan delivery, 64),
	}
}

// Run owns the client registry. Call it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true

		case client := <-h.unregister:
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}

		case d := <-h.deliveries:
			for _, userID := range d.userIDs {
				for client := range h.clients[userID] {
					select {
					case client.send <- d.data:
					default:
						// Slow consumer, drop the connection.
						delete(h.clients[userID], client)
						close(client.send)
					}
				}
			}
		}
	}
}

// MatchCreated notifies both participants of a new match.
func (h *Hub) MatchCreated(match *models.Match) {
	h.push([]uuid.UUID{match.UserLowID, match.UserHighID}, Event{
		Type: EventMatchCreated,
		Payload: map[string]interface{}{
			"matchId":   match.ID,
			"createdAt": match.CreatedAt,
		},
	})
}

// MessageSent notifies both participants. The sender is included so its
// other devices stay in sync.
func (h *Hub) MessageSent(message *models.Message) {
	participants, ok := h.participants(message.MatchID)
	if !ok {
		return
	}

	h.push(participants, Event{
		Type: EventMessageSent,
		Payload: map[string]interface{}{
			"matchId":   message.MatchID,
			"messageId": message.ID,
			"senderId":  message.SenderID,
			"content":   message.Content,
			"photoUrl":  message.PhotoURL,
			"sentAt":    message.SentAt,
		},
	})
}

// ReadReceipt notifies participants that messages were read.
func (h *Hub) ReadReceipt(matchID, readerID uuid.UUID, messageIDs []uuid.UUID, at time.Time) {
	participants, ok := h.participants(matchID)
	if !ok {
		return
	}

	h.push(participants, Event{
		Type: EventMessageRead,
		Payload: map[string]interface{}{
			"matchId":    matchID,
			"readerId":   readerID,
			"messageIds": messageIDs,
			"readAt":     at,
		},
	})
}

func (h *Hub) participants(matchID uuid.UUID) ([]uuid.UUID, bool) {
	match, err := h.matches.GetByID(matchID)
	if err != nil || match == nil {
		return nil, false
	}
	return []uuid.UUID{match.UserLowID, match.UserHighID}, true
}

func (h *Hub) push(userIDs []uuid.UUID, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event", "type", event.Type, "error", err)
		return
	}

	select {
	case h.deliveries <- delivery{userIDs: userIDs, data: data}:
	default:
		logger.Warn("Dropping event, delivery queue full", "type", event.Type)
	}
}
