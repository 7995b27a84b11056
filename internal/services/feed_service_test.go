package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
)

func TestGetCandidates_ExclusionRules(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	swipedUser := env.createUser(t, "Swiped")
	blockedUser := env.createUser(t, "Blocked")
	blocker := env.createUser(t, "Blocker")
	fresh := env.createUser(t, "Fresh")

	if _, err := env.swipeSvc.ProcessSwipe(alice, swipedUser, models.SwipeDirectionPass); err != nil {
		t.Fatal(err)
	}
	if err := env.blocks.Create(&models.Block{BlockerID: alice, TargetID: blockedUser}); err != nil {
		t.Fatal(err)
	}
	if err := env.blocks.Create(&models.Block{BlockerID: blocker, TargetID: alice}); err != nil {
		t.Fatal(err)
	}

	candidates, err := env.feedSvc.GetCandidates(alice, 100, 1, 20)
	if err != nil {
		t.Fatalf("GetCandidates() error = %v", err)
	}

	ids := map[uuid.UUID]bool{}
	for _, c := range candidates {
		ids[c.UserID] = true
	}

	if ids[alice] {
		t.Error("feed contains the viewer")
	}
	if ids[swipedUser] {
		t.Error("feed contains an already-swiped user")
	}
	if ids[blockedUser] {
		t.Error("feed contains a blocked user")
	}
	if ids[blocker] {
		t.Error("feed contains a user who blocked the viewer")
	}
	if !ids[fresh] {
		t.Error("feed is missing an eligible user")
	}
}

func TestGetCandidates_NoLocationEmptyFeed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", func(u *models.User) {
		u.Latitude = 0
		u.Longitude = 0
		u.LocationUpdatedAt = nil
	})
	env.createUser(t, "Bob")

	candidates, err := env.feedSvc.GetCandidates(alice, 100, 1, 20)
	if err != nil {
		t.Fatalf("GetCandidates() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("GetCandidates() returned %d entries for locationless viewer, want 0", len(candidates))
	}
}

func TestGetCandidates_RadiusFilter(t *testing.T) {
	env := newTestEnv(t)

	// Viewer in central Warsaw; one candidate nearby, one in Krakow.
	alice := env.createUser(t, "Alice")
	near := env.createUser(t, "Near", func(u *models.User) {
		u.Latitude = 52.2400
		u.Longitude = 21.0200
	})
	far := env.createUser(t, "Far", func(u *models.User) {
		u.Latitude = 50.0647
		u.Longitude = 19.9450
	})

	candidates, err := env.feedSvc.GetCandidates(alice, 50, 1, 20)
	if err != nil {
		t.Fatalf("GetCandidates() error = %v", err)
	}

	ids := map[uuid.UUID]bool{}
	for _, c := range candidates {
		ids[c.UserID] = true
		if c.UserID == near && (c.DistanceKm <= 0 || c.DistanceKm > 5) {
			t.Errorf("near candidate distance = %.1f km, want within (0, 5]", c.DistanceKm)
		}
	}

	if !ids[near] {
		t.Error("nearby candidate missing from feed")
	}
	if ids[far] {
		t.Error("candidate beyond radius present in feed")
	}
}

func TestGetCandidates_RadiusClampedToProfileMax(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser(t, "Alice", func(u *models.User) {
		u.MaxDistanceKm = 2
	})
	// About 25 km away.
	env.createUser(t, "Suburb", func(u *models.User) {
		u.Latitude = 52.40
		u.Longitude = 21.20
	})

	// The requested 500 km radius is clamped to the profile's 2 km.
	candidates, err := env.feedSvc.GetCandidates(alice, 500, 1, 20)
	if err != nil {
		t.Fatalf("GetCandidates() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("GetCandidates() returned %d entries beyond profile max distance", len(candidates))
	}
}

func TestGetCandidates_PreferenceFilters(t *testing.T) {
	env := newTestEnv(t)

	alice := env.createUser(t, "Alice", func(u *models.User) {
		u.SearchGender = models.SearchGenderMale
		u.AgeMin = 25
		u.AgeMax = 35
	})
	inRange := env.createUser(t, "InRange", func(u *models.User) {
		u.Gender = models.GenderMale
		u.BirthDate = time.Now().UTC().AddDate(-30, 0, 0)
	})
	tooYoung := env.createUser(t, "TooYoung", func(u *models.User) {
		u.Gender = models.GenderMale
		u.BirthDate = time.Now().UTC().AddDate(-20, 0, 0)
	})
	wrongGender := env.createUser(t, "WrongGender", func(u *models.User) {
		u.Gender = models.GenderFemale
		u.BirthDate = time.Now().UTC().AddDate(-30, 0, 0)
	})

	candidates, err := env.feedSvc.GetCandidates(alice, 100, 1, 20)
	if err != nil {
		t.Fatalf("GetCandidates() error = %v", err)
	}

	ids := map[uuid.UUID]bool{}
	for _, c := range candidates {
		ids[c.UserID] = true
	}

	if !ids[inRange] {
		t.Error("candidate matching preferences missing from feed")
	}
	if ids[tooYoung] {
		t.Error("candidate below age preference present in feed")
	}
	if ids[wrongGender] {
		t.Error("candidate outside gender preference present in feed")
	}
}

func TestGetCandidates_Pagination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")

	for _, name := range []string{"B", "C", "D", "E", "F"} {
		env.createUser(t, name)
	}

	page1, err := env.feedSvc.GetCandidates(alice, 100, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	page3, err := env.feedSvc.GetCandidates(alice, 100, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	pastEnd, err := env.feedSvc.GetCandidates(alice, 100, 9, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(page1) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(page1))
	}
	if len(page3) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3))
	}
	if len(pastEnd) != 0 {
		t.Errorf("page past end size = %d, want 0", len(pastEnd))
	}
}
