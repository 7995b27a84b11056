package services

import (
	"testing"

	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
)

func TestProcessSwipe_Validation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	tests := []struct {
		name      string
		direction string
		selfSwipe bool
	}{
		{
			name:      "Self swipe",
			direction: models.SwipeDirectionLike,
			selfSwipe: true,
		},
		{
			name:      "Invalid direction",
			direction: "superlike",
		},
		{
			name:      "Empty direction",
			direction: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := bob
			if tt.selfSwipe {
				target = alice
			}

			_, err := env.swipeSvc.ProcessSwipe(alice, target, tt.direction)
			if !errors.IsCode(err, errors.ErrCodeValidation) {
				t.Errorf("ProcessSwipe() error = %v, want VALIDATION_ERROR", err)
			}
		})
	}
}

func TestProcessSwipe_SingleLikeNoMatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	result, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("ProcessSwipe() error = %v", err)
	}

	if result.Matched {
		t.Error("ProcessSwipe() Matched = true for one-sided like")
	}
	if result.MatchID != nil {
		t.Errorf("ProcessSwipe() MatchID = %v, want nil", result.MatchID)
	}
}

func TestProcessSwipe_MutualLikeCreatesMatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	first, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("ProcessSwipe(alice→bob) error = %v", err)
	}
	if first.Matched {
		t.Fatal("first like already matched")
	}

	second, err := env.swipeSvc.ProcessSwipe(bob, alice, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("ProcessSwipe(bob→alice) error = %v", err)
	}

	if !second.Matched {
		t.Fatal("ProcessSwipe() Matched = false for mutual like")
	}
	if second.MatchID == nil {
		t.Fatal("ProcessSwipe() MatchID = nil for mutual like")
	}

	if got := env.countMatches(t); got != 1 {
		t.Errorf("match count = %d, want 1", got)
	}

	// The stored pair is in canonical order regardless of swipe order.
	match, err := env.matches.GetByID(*second.MatchID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	low, high := models.CanonicalPair(alice, bob)
	if match.UserLowID != low || match.UserHighID != high {
		t.Errorf("match pair = (%s, %s), want (%s, %s)",
			match.UserLowID, match.UserHighID, low, high)
	}
}

func TestProcessSwipe_SymmetricOrder(t *testing.T) {
	// Whichever side swipes second, there is exactly one match for the pair
	// and it carries the same canonical ordering.
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	carol := env.createUser(t, "Carol")
	dave := env.createUser(t, "Dave", func(u *models.User) {
		u.Gender = models.GenderMale
	})

	// Pair 1: alice likes first.
	if _, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike); err != nil {
		t.Fatal(err)
	}
	r1, err := env.swipeSvc.ProcessSwipe(bob, alice, models.SwipeDirectionLike)
	if err != nil {
		t.Fatal(err)
	}

	// Pair 2: dave likes first.
	if _, err := env.swipeSvc.ProcessSwipe(dave, carol, models.SwipeDirectionLike); err != nil {
		t.Fatal(err)
	}
	r2, err := env.swipeSvc.ProcessSwipe(carol, dave, models.SwipeDirectionLike)
	if err != nil {
		t.Fatal(err)
	}

	if !r1.Matched || !r2.Matched {
		t.Fatal("expected both pairs to match")
	}

	if got := env.countMatches(t); got != 2 {
		t.Errorf("match count = %d, want 2", got)
	}
}

func TestProcessSwipe_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	first, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("ProcessSwipe() error = %v", err)
	}

	// Repeating the identical swipe changes nothing.
	second, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("repeated ProcessSwipe() error = %v", err)
	}
	if second.Matched != first.Matched {
		t.Errorf("repeated swipe Matched = %v, want %v", second.Matched, first.Matched)
	}

	// A contradictory re-swipe does not flip the stored direction.
	third, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionPass)
	if err != nil {
		t.Fatalf("contradictory ProcessSwipe() error = %v", err)
	}
	if third.Matched != first.Matched {
		t.Errorf("contradictory swipe Matched = %v, want %v", third.Matched, first.Matched)
	}

	if got := env.countSwipes(t, alice, bob); got != 1 {
		t.Errorf("swipe count = %d, want 1", got)
	}

	stored, err := env.swipes.Get(alice, bob)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Direction != models.SwipeDirectionLike {
		t.Errorf("stored direction = %q, want %q", stored.Direction, models.SwipeDirectionLike)
	}
}

func TestProcessSwipe_DuplicateAfterMatchReturnsSameMatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	if _, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike); err != nil {
		t.Fatal(err)
	}
	matched, err := env.swipeSvc.ProcessSwipe(bob, alice, models.SwipeDirectionLike)
	if err != nil {
		t.Fatal(err)
	}

	replay, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("replayed ProcessSwipe() error = %v", err)
	}

	if !replay.Matched {
		t.Fatal("replayed swipe after match reported Matched = false")
	}
	if replay.MatchID == nil || *replay.MatchID != *matched.MatchID {
		t.Errorf("replayed MatchID = %v, want %v", replay.MatchID, matched.MatchID)
	}
	if got := env.countMatches(t); got != 1 {
		t.Errorf("match count = %d, want 1", got)
	}
}

func TestProcessSwipe_PassNeverMatches(t *testing.T) {
	tests := []struct {
		name            string
		firstDirection  string
		secondDirection string
	}{
		{
			name:            "Pass then like",
			firstDirection:  models.SwipeDirectionPass,
			secondDirection: models.SwipeDirectionLike,
		},
		{
			name:            "Like then pass",
			firstDirection:  models.SwipeDirectionLike,
			secondDirection: models.SwipeDirectionPass,
		},
		{
			name:            "Pass both ways",
			firstDirection:  models.SwipeDirectionPass,
			secondDirection: models.SwipeDirectionPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			alice := env.createUser(t, "Alice")
			bob := env.createUser(t, "Bob")

			r1, err := env.swipeSvc.ProcessSwipe(alice, bob, tt.firstDirection)
			if err != nil {
				t.Fatal(err)
			}
			r2, err := env.swipeSvc.ProcessSwipe(bob, alice, tt.secondDirection)
			if err != nil {
				t.Fatal(err)
			}

			if r1.Matched || r2.Matched {
				t.Error("a pass produced a match")
			}
			if got := env.countMatches(t); got != 0 {
				t.Errorf("match count = %d, want 0", got)
			}
		})
	}
}

func TestCreateForPair_RaceLoserGetsWinnersMatch(t *testing.T) {
	// Exercises the duplicate-key recovery directly: a second insert for the
	// same pair must return the first row instead of erroring.
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	winner, created, err := env.matches.CreateForPair(alice, bob)
	if err != nil {
		t.Fatalf("CreateForPair() error = %v", err)
	}
	if !created {
		t.Fatal("first CreateForPair() created = false")
	}

	loser, created, err := env.matches.CreateForPair(bob, alice)
	if err != nil {
		t.Fatalf("second CreateForPair() error = %v", err)
	}
	if created {
		t.Error("second CreateForPair() created = true")
	}
	if loser.ID != winner.ID {
		t.Errorf("race loser got match %s, want %s", loser.ID, winner.ID)
	}
	if got := env.countMatches(t); got != 1 {
		t.Errorf("match count = %d, want 1", got)
	}
}
