package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/internal/security"
	"github.com/sparkdate/spark-server/pkg/utils"
)

// ProfileService exposes profile reads and updates.
type ProfileService struct {
	users *repositories.UserRepository
}

func NewProfileService(users *repositories.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// PublicProfile is the subset of a profile visible to other users.
type PublicProfile struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Bio         string    `json:"bio,omitempty"`
	DistanceKm  *float64  `json:"distanceKm,omitempty"`
}

// Profile is the owner's view, including search preferences.
type Profile struct {
	UserID        uuid.UUID  `json:"userId"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"displayName"`
	BirthDate     time.Time  `json:"birthDate"`
	Age           int        `json:"age"`
	Gender        string     `json:"gender"`
	Bio           string     `json:"bio,omitempty"`
	SearchGender  string     `json:"searchGender"`
	AgeMin        int        `json:"ageMin"`
	AgeMax        int        `json:"ageMax"`
	MaxDistanceKm int        `json:"maxDistanceKm"`
	HasLocation   bool       `json:"hasLocation"`
	LocationAt    *time.Time `json:"locationUpdatedAt,omitempty"`
}

// ProfileUpdate carries optional profile changes; nil fields are untouched.
type ProfileUpdate struct {
	DisplayName   *string
	Bio           *string
	SearchGender  *string
	AgeMin        *int
	AgeMax        *int
	MaxDistanceKm *int
}

// GetProfile returns the owner's full profile.
func (s *ProfileService) GetProfile(userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		BirthDate:     user.BirthDate,
		Age:           user.Age(time.Now().UTC()),
		Gender:        user.Gender,
		Bio:           user.Bio,
		SearchGender:  user.SearchGender,
		AgeMin:        user.AgeMin,
		AgeMax:        user.AgeMax,
		MaxDistanceKm: user.MaxDistanceKm,
		HasLocation:   user.HasLocation(),
		LocationAt:    user.LocationUpdatedAt,
	}, nil
}

// GetPublicProfile returns what viewerID may see of userID. When both sides
// have a location the distance between them is included.
func (s *ProfileService) GetPublicProfile(userID uuid.UUID, viewerID *uuid.UUID) (*PublicProfile, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &PublicProfile{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Age:         user.Age(time.Now().UTC()),
		Gender:      user.Gender,
		Bio:         user.Bio,
	}

	if viewerID != nil && user.HasLocation() {
		viewer, err := s.users.GetByID(*viewerID)
		if err == nil && viewer.HasLocation() {
			dist := utils.HaversineKm(user.Latitude, user.Longitude, viewer.Latitude, viewer.Longitude)
			profile.DistanceKm = &dist
		}
	}

	return profile, nil
}

// UpdateProfile applies the non-nil fields of update.
func (s *ProfileService) UpdateProfile(userID uuid.UUID, update *ProfileUpdate) error {
	changes := map[string]interface{}{}

	if update.DisplayName != nil {
		changes["display_name"] = security.SanitizeString(security.SanitizeHTML(*update.DisplayName))
	}
	if update.Bio != nil {
		changes["bio"] = security.SanitizeString(security.SanitizeHTML(*update.Bio))
	}
	if update.SearchGender != nil {
		changes["search_gender"] = *update.SearchGender
	}
	if update.AgeMin != nil {
		changes["age_min"] = *update.AgeMin
	}
	if update.AgeMax != nil {
		changes["age_max"] = *update.AgeMax
	}
	if update.MaxDistanceKm != nil {
		changes["max_distance_km"] = *update.MaxDistanceKm
	}

	if len(changes) == 0 {
		return nil
	}

	return s.users.UpdateProfile(userID, changes)
}

// UpdateLocation records the user's current coordinates.
func (s *ProfileService) UpdateLocation(userID uuid.UUID, lat, lon float64) error {
	return s.users.UpdateLocation(userID, lat, lon)
}
