package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MatchID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_message_match_sent"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content     string     `gorm:"type:text"`
	PhotoURL    string     `gorm:"type:varchar(500)"`
	SentAt      time.Time  `gorm:"autoCreateTime;index:idx_message_match_sent"`
	DeliveredAt *time.Time `gorm:""`
	ReadAt      *time.Time `gorm:"index"`
}

// UnreadBy reports whether viewerID still has this message pending: it was
// sent by the counterpart and never marked read.
func (m *Message) UnreadBy(viewerID uuid.UUID) bool {
	return m.SenderID != viewerID && m.ReadAt == nil
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}
