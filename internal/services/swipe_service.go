package services

import (
	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/pkg/errors"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// SwipeService records swipes and resolves mutual likes into matches.
type SwipeService struct {
	swipes   *repositories.SwipeRepository
	matches  *repositories.MatchRepository
	notifier Notifier
}

func NewSwipeService(swipes *repositories.SwipeRepository, matches *repositories.MatchRepository, notifier Notifier) *SwipeService {
	if notifier == nil {
		notifier = NoopNotifier()
	}
	return &SwipeService{
		swipes:   swipes,
		matches:  matches,
		notifier: notifier,
	}
}

// SwipeResult is what the swipe endpoint returns to the caller.
type SwipeResult struct {
	Matched bool       `json:"matched"`
	MatchID *uuid.UUID `json:"matchId,omitempty"`
}

// ProcessSwipe records the actor's preference and reports whether it
// completed a mutual like. The operation is idempotent: re-swiping a pair
// never writes a second row, never changes the stored direction, and returns
// the same outcome as the original swipe.
func (s *SwipeService) ProcessSwipe(actorID, targetID uuid.UUID, direction string) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, errors.New(errors.ErrCodeValidation, "cannot swipe on yourself")
	}
	if !models.ValidDirection(direction) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid swipe direction")
	}

	swipe := &models.Swipe{
		SwiperID:  actorID,
		TargetID:  targetID,
		Direction: direction,
	}

	alreadyExisted, stored, err := s.swipes.Record(swipe)
	if err != nil {
		return nil, err
	}

	// The stored direction is authoritative: a repeated swipe replays the
	// original outcome no matter what direction was submitted this time.
	if stored.Direction != models.SwipeDirectionLike {
		return &SwipeResult{Matched: false}, nil
	}

	reverse, err := s.swipes.Get(targetID, actorID)
	if err != nil {
		return nil, err
	}
	if reverse == nil || reverse.Direction != models.SwipeDirectionLike {
		return &SwipeResult{Matched: false}, nil
	}

	match, created, err := s.matches.CreateForPair(actorID, targetID)
	if err != nil {
		return nil, err
	}

	if created {
		logger.Info("Match created",
			"match_id", match.ID,
			"user_low", match.UserLowID,
			"user_high", match.UserHighID,
		)
		s.notifier.MatchCreated(match)
	} else if alreadyExisted {
		logger.Debug("Duplicate swipe replayed existing match",
			"match_id", match.ID,
			"swiper", actorID,
		)
	}

	matchID := match.ID
	return &SwipeResult{Matched: true, MatchID: &matchID}, nil
}
