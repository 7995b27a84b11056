package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
)

// matchUsers creates a mutual like between two fresh users and returns their
// ids plus the match id.
func matchUsers(t *testing.T, env *testEnv, nameA, nameB string) (uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()

	a := env.createUser(t, nameA)
	b := env.createUser(t, nameB)

	if _, err := env.swipeSvc.ProcessSwipe(a, b, models.SwipeDirectionLike); err != nil {
		t.Fatal(err)
	}
	result, err := env.swipeSvc.ProcessSwipe(b, a, models.SwipeDirectionLike)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.MatchID == nil {
		t.Fatal("failed to create match for test")
	}

	return a, b, *result.MatchID
}

func (env *testEnv) insertMessage(t *testing.T, matchID, senderID uuid.UUID, content string, sentAt time.Time) *models.Message {
	t.Helper()

	msg := &models.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
		SentAt:   sentAt,
	}
	if err := env.db.Create(msg).Error; err != nil {
		t.Fatalf("failed to insert message: %v", err)
	}
	return msg
}

func TestListMatches_BothSidesSeeSameMatch(t *testing.T) {
	env := newTestEnv(t)
	alice, bob, matchID := matchUsers(t, env, "Alice", "Bob")

	for _, userID := range []uuid.UUID{alice, bob} {
		list, err := env.matchSvc.ListMatches(userID, 1, 50)
		if err != nil {
			t.Fatalf("ListMatches() error = %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("ListMatches() returned %d entries, want 1", len(list))
		}
		if list[0].MatchID != matchID {
			t.Errorf("MatchID = %s, want %s", list[0].MatchID, matchID)
		}
	}
}

func TestListMatches_PreviewAndUnread(t *testing.T) {
	env := newTestEnv(t)
	alice, bob, matchID := matchUsers(t, env, "Alice", "Bob")

	list, err := env.matchSvc.ListMatches(alice, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if list[0].LastMessagePreview != emptyConversationPreview {
		t.Errorf("preview = %q, want fallback %q", list[0].LastMessagePreview, emptyConversationPreview)
	}
	if list[0].UnreadCount != 0 {
		t.Errorf("unread = %d, want 0", list[0].UnreadCount)
	}
	if list[0].Counterpart == nil || list[0].Counterpart.DisplayName != "Bob" {
		t.Errorf("counterpart = %+v, want Bob's profile", list[0].Counterpart)
	}

	base := time.Now().UTC().Add(-time.Hour)
	env.insertMessage(t, matchID, bob, "hi", base)
	env.insertMessage(t, matchID, bob, "you there?", base.Add(time.Minute))
	env.insertMessage(t, matchID, alice, "hey!", base.Add(2*time.Minute))

	list, err = env.matchSvc.ListMatches(alice, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if list[0].LastMessagePreview != "hey!" {
		t.Errorf("preview = %q, want %q", list[0].LastMessagePreview, "hey!")
	}
	// Alice has two unread messages from Bob; her own message does not count.
	if list[0].UnreadCount != 2 {
		t.Errorf("unread = %d, want 2", list[0].UnreadCount)
	}

	// Bob sees one unread (Alice's reply).
	list, err = env.matchSvc.ListMatches(bob, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if list[0].UnreadCount != 1 {
		t.Errorf("bob's unread = %d, want 1", list[0].UnreadCount)
	}
}

func TestListMatches_OrderedByActivity(t *testing.T) {
	env := newTestEnv(t)

	// Alice matches with Bob first, then Carol.
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	carol := env.createUser(t, "Carol")

	mustMatch := func(a, b uuid.UUID) uuid.UUID {
		t.Helper()
		if _, err := env.swipeSvc.ProcessSwipe(a, b, models.SwipeDirectionLike); err != nil {
			t.Fatal(err)
		}
		r, err := env.swipeSvc.ProcessSwipe(b, a, models.SwipeDirectionLike)
		if err != nil {
			t.Fatal(err)
		}
		return *r.MatchID
	}

	bobMatch := mustMatch(alice, bob)
	carolMatch := mustMatch(alice, carol)

	// A message in the older match moves it to the top.
	env.insertMessage(t, bobMatch, bob, "ping", time.Now().UTC().Add(time.Minute))

	list, err := env.matchSvc.ListMatches(alice, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("ListMatches() returned %d entries, want 2", len(list))
	}
	if list[0].MatchID != bobMatch || list[1].MatchID != carolMatch {
		t.Errorf("order = [%s, %s], want [%s, %s]",
			list[0].MatchID, list[1].MatchID, bobMatch, carolMatch)
	}
}

func TestListMatches_Pagination(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")

	for _, name := range []string{"Bob", "Carol", "Dave"} {
		other := env.createUser(t, name)
		if _, err := env.swipeSvc.ProcessSwipe(alice, other, models.SwipeDirectionLike); err != nil {
			t.Fatal(err)
		}
		if _, err := env.swipeSvc.ProcessSwipe(other, alice, models.SwipeDirectionLike); err != nil {
			t.Fatal(err)
		}
	}

	page1, err := env.matchSvc.ListMatches(alice, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	page2, err := env.matchSvc.ListMatches(alice, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(page1) != 2 || len(page2) != 1 {
		t.Errorf("page sizes = %d, %d; want 2, 1", len(page1), len(page2))
	}
}

func TestGetMatchDetails(t *testing.T) {
	env := newTestEnv(t)
	alice, _, matchID := matchUsers(t, env, "Alice", "Bob")
	outsider := env.createUser(t, "Eve")

	details, err := env.matchSvc.GetMatchDetails(matchID, alice)
	if err != nil {
		t.Fatalf("GetMatchDetails() error = %v", err)
	}
	if details.MatchID != matchID {
		t.Errorf("MatchID = %s, want %s", details.MatchID, matchID)
	}
	if details.UserLow == nil || details.UserHigh == nil {
		t.Fatal("GetMatchDetails() missing participant profiles")
	}

	// A non-participant cannot tell the match exists.
	_, err = env.matchSvc.GetMatchDetails(matchID, outsider)
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("outsider GetMatchDetails() error = %v, want NOT_FOUND", err)
	}

	// Same signal for a match that never existed.
	_, err = env.matchSvc.GetMatchDetails(uuid.New(), alice)
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("missing GetMatchDetails() error = %v, want NOT_FOUND", err)
	}
}

func TestIsParticipant(t *testing.T) {
	env := newTestEnv(t)
	alice, bob, matchID := matchUsers(t, env, "Alice", "Bob")
	outsider := env.createUser(t, "Eve")

	tests := []struct {
		name   string
		userID uuid.UUID
		want   bool
	}{
		{
			name:   "First participant",
			userID: alice,
			want:   true,
		},
		{
			name:   "Second participant",
			userID: bob,
			want:   true,
		},
		{
			name:   "Outsider",
			userID: outsider,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.matchSvc.IsParticipant(matchID, tt.userID)
			if err != nil {
				t.Fatalf("IsParticipant() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsParticipant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnmatch_CascadeCompleteness(t *testing.T) {
	env := newTestEnv(t)
	alice, bob, matchID := matchUsers(t, env, "Alice", "Bob")

	base := time.Now().UTC().Add(-time.Hour)
	env.insertMessage(t, matchID, alice, "one", base)
	env.insertMessage(t, matchID, bob, "two", base.Add(time.Minute))
	env.insertMessage(t, matchID, alice, "three", base.Add(2*time.Minute))

	ok, err := env.matchSvc.Unmatch(matchID, alice)
	if err != nil {
		t.Fatalf("Unmatch() error = %v", err)
	}
	if !ok {
		t.Fatal("Unmatch() = false for participant")
	}

	// The match is gone for both sides.
	for _, userID := range []uuid.UUID{alice, bob} {
		list, err := env.matchSvc.ListMatches(userID, 1, 50)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 0 {
			t.Errorf("ListMatches() after unmatch returned %d entries", len(list))
		}
	}

	if _, err := env.matchSvc.GetMatchDetails(matchID, alice); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetMatchDetails() after unmatch error = %v, want NOT_FOUND", err)
	}

	if got := env.countMessages(t, matchID); got != 0 {
		t.Errorf("message count after unmatch = %d, want 0", got)
	}

	// Both directional swipes are gone, so either side may re-swipe.
	if got := env.countSwipes(t, alice, bob); got != 0 {
		t.Errorf("alice→bob swipe survived unmatch")
	}
	if got := env.countSwipes(t, bob, alice); got != 0 {
		t.Errorf("bob→alice swipe survived unmatch")
	}

	result, err := env.swipeSvc.ProcessSwipe(alice, bob, models.SwipeDirectionLike)
	if err != nil {
		t.Fatalf("re-swipe after unmatch error = %v", err)
	}
	if result.Matched {
		t.Error("re-swipe after unmatch immediately matched")
	}
}

func TestUnmatch_NonParticipantNoOp(t *testing.T) {
	env := newTestEnv(t)
	alice, bob, matchID := matchUsers(t, env, "Alice", "Bob")
	outsider := env.createUser(t, "Eve")

	env.insertMessage(t, matchID, alice, "hello", time.Now().UTC())

	ok, err := env.matchSvc.Unmatch(matchID, outsider)
	if err != nil {
		t.Fatalf("Unmatch() error = %v", err)
	}
	if ok {
		t.Fatal("Unmatch() = true for non-participant")
	}

	// Nothing was touched.
	if got := env.countMatches(t); got != 1 {
		t.Errorf("match count = %d, want 1", got)
	}
	if got := env.countMessages(t, matchID); got != 1 {
		t.Errorf("message count = %d, want 1", got)
	}
	if got := env.countSwipes(t, alice, bob); got != 1 {
		t.Errorf("alice→bob swipe count = %d, want 1", got)
	}
	if got := env.countSwipes(t, bob, alice); got != 1 {
		t.Errorf("bob→alice swipe count = %d, want 1", got)
	}
}

func TestUnmatch_MissingMatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")

	ok, err := env.matchSvc.Unmatch(uuid.New(), alice)
	if err != nil {
		t.Fatalf("Unmatch() error = %v", err)
	}
	if ok {
		t.Error("Unmatch() = true for missing match")
	}
}
