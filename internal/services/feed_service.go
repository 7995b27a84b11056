package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/pkg/utils"
)

// FeedService produces swipe candidates for a user.
type FeedService struct {
	users  *repositories.UserRepository
	swipes *repositories.SwipeRepository
	blocks *repositories.BlockRepository
}

func NewFeedService(users *repositories.UserRepository, swipes *repositories.SwipeRepository, blocks *repositories.BlockRepository) *FeedService {
	return &FeedService{
		users:  users,
		swipes: swipes,
		blocks: blocks,
	}
}

// Candidate is one feed entry.
type Candidate struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Bio         string    `json:"bio,omitempty"`
	DistanceKm  float64   `json:"distanceKm"`
}

// GetCandidates returns a page of users the viewer could swipe on: nobody
// already swiped, blocked (either direction), or out of the viewer's age,
// gender, and distance preferences. A viewer with no location gets an empty
// feed.
func (s *FeedService) GetCandidates(userID uuid.UUID, radiusKm, page, pageSize int) ([]Candidate, error) {
	me, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !me.HasLocation() {
		return []Candidate{}, nil
	}

	effectiveRadius := radiusKm
	if me.MaxDistanceKm < effectiveRadius {
		effectiveRadius = me.MaxDistanceKm
	}

	swiped, err := s.swipes.SwipedTargetIDs(userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.blocks.BlockedIDs(userID)
	if err != nil {
		return nil, err
	}

	excluded := make([]uuid.UUID, 0, len(swiped)+len(blocked)+1)
	excluded = append(excluded, userID)
	excluded = append(excluded, swiped...)
	excluded = append(excluded, blocked...)

	candidates, err := s.users.FindCandidates(excluded)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filtered := make([]Candidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !s.matchesPreferences(me, c, now) {
			continue
		}

		dist := utils.HaversineKm(me.Latitude, me.Longitude, c.Latitude, c.Longitude)
		if dist > float64(effectiveRadius) {
			continue
		}

		filtered = append(filtered, Candidate{
			UserID:      c.ID,
			DisplayName: c.DisplayName,
			Age:         c.Age(now),
			Gender:      c.Gender,
			Bio:         c.Bio,
			DistanceKm:  dist,
		})
	}

	return paginate(filtered, page, pageSize), nil
}

func (s *FeedService) matchesPreferences(me *models.User, candidate *models.User, now time.Time) bool {
	age := candidate.Age(now)
	if age < me.AgeMin || age > me.AgeMax {
		return false
	}
	if me.SearchGender != models.SearchGenderAny && candidate.Gender != me.SearchGender {
		return false
	}
	return true
}

func paginate(candidates []Candidate, page, pageSize int) []Candidate {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(candidates) {
		return []Candidate{}
	}

	end := start + pageSize
	if end > len(candidates) {
		end = len(candidates)
	}

	return candidates[start:end]
}
