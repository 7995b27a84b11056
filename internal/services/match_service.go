package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/pkg/errors"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// Fallback preview for matches with no conversation yet.
const emptyConversationPreview = "Say hello!"

// MatchService lists matches, gates access to them, and performs unmatching.
type MatchService struct {
	matches  *repositories.MatchRepository
	profiles *ProfileService
}

func NewMatchService(matches *repositories.MatchRepository, profiles *ProfileService) *MatchService {
	return &MatchService{
		matches:  matches,
		profiles: profiles,
	}
}

// MatchSummary is one row of the match list.
type MatchSummary struct {
	MatchID            uuid.UUID      `json:"matchId"`
	Counterpart        *PublicProfile `json:"counterpart"`
	LastMessagePreview string         `json:"lastMessagePreview"`
	UnreadCount        int            `json:"unreadCount"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// MatchDetails is the full view of a single match.
type MatchDetails struct {
	MatchID   uuid.UUID      `json:"matchId"`
	UserLow   *PublicProfile `json:"userA"`
	UserHigh  *PublicProfile `json:"userB"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ListMatches returns a page of the user's matches ordered by most recent
// activity. Each entry carries the counterpart's public profile, a preview of
// the latest message, and how many counterpart messages are still unread.
func (s *MatchService) ListMatches(userID uuid.UUID, page, pageSize int) ([]MatchSummary, error) {
	matches, err := s.matches.ListForUser(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for i := range matches {
		match := &matches[i]

		counterpart, err := s.profiles.GetPublicProfile(match.Counterpart(userID), &userID)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeNotFound) {
				// Counterpart account is gone; hide the match rather than fail the page.
				continue
			}
			return nil, err
		}

		var last *models.Message
		unread := 0
		for j := range match.Messages {
			msg := &match.Messages[j]
			if last == nil || msg.SentAt.After(last.SentAt) {
				last = msg
			}
			if msg.UnreadBy(userID) {
				unread++
			}
		}

		preview := emptyConversationPreview
		if last != nil {
			preview = last.Content
		}

		summaries = append(summaries, MatchSummary{
			MatchID:            match.ID,
			Counterpart:        counterpart,
			LastMessagePreview: preview,
			UnreadCount:        unread,
			CreatedAt:          match.CreatedAt,
		})
	}

	return summaries, nil
}

// GetMatchDetails returns both participants' profiles. A match the viewer is
// not part of is reported as NOT_FOUND, indistinguishable from one that does
// not exist.
func (s *MatchService) GetMatchDetails(matchID, viewerID uuid.UUID) (*MatchDetails, error) {
	match, err := s.matches.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if match == nil || !match.Involves(viewerID) {
		return nil, errors.New(errors.ErrCodeNotFound, "match not found")
	}

	userLow, err := s.profiles.GetPublicProfile(match.UserLowID, &viewerID)
	if err != nil {
		return nil, err
	}
	userHigh, err := s.profiles.GetPublicProfile(match.UserHighID, &viewerID)
	if err != nil {
		return nil, err
	}

	return &MatchDetails{
		MatchID:   match.ID,
		UserLow:   userLow,
		UserHigh:  userHigh,
		CreatedAt: match.CreatedAt,
	}, nil
}

// IsParticipant reports whether userID belongs to the match. Every message
// operation checks this before touching anything.
func (s *MatchService) IsParticipant(matchID, userID uuid.UUID) (bool, error) {
	return s.matches.IsParticipant(matchID, userID)
}

// Unmatch ends the match: its messages, the match row, and both directional
// swipes are deleted in one transaction, so the pair can swipe each other
// again from scratch. A non-participant caller gets false and nothing changes.
func (s *MatchService) Unmatch(matchID, actorID uuid.UUID) (bool, error) {
	match, err := s.matches.GetByID(matchID)
	if err != nil {
		return false, err
	}
	if match == nil || !match.Involves(actorID) {
		return false, nil
	}

	if err := s.matches.DeleteCascade(match); err != nil {
		return false, err
	}

	logger.Info("Unmatched",
		"match_id", match.ID,
		"actor", actorID,
	)

	return true, nil
}
