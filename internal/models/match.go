package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match records a mutual like between two users. The pair is stored in
// canonical order (bytewise-smaller id first) so that {A,B} always maps to
// one row no matter which side swiped last.
type Match struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserLowID  uuid.UUID `gorm:"type:uuid;not null;index:idx_match_pair,unique"`
	UserLow    User      `gorm:"foreignKey:UserLowID;constraint:OnDelete:CASCADE"`
	UserHighID uuid.UUID `gorm:"type:uuid;not null;index:idx_match_pair,unique"`
	UserHigh   User      `gorm:"foreignKey:UserHighID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	Messages   []Message `gorm:"foreignKey:MatchID"`
}

// CanonicalPair orders two user ids by bytewise comparison.
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b
	}
	return b, a
}

// Involves reports whether userID is one of the match participants.
func (m *Match) Involves(userID uuid.UUID) bool {
	return m.UserLowID == userID || m.UserHighID == userID
}

// Counterpart returns the other participant's id. The caller must already
// know userID is a participant.
func (m *Match) Counterpart(userID uuid.UUID) uuid.UUID {
	if m.UserLowID == userID {
		return m.UserHighID
	}
	return m.UserLowID
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Match) TableName() string {
	return "matches"
}
