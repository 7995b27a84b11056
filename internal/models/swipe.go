package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Swipe is a one-directional preference from one user toward another.
// Rows are immutable; only an unmatch removes them.
type Swipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SwiperID  uuid.UUID `gorm:"type:uuid;not null;index:idx_swipe_pair,unique"`
	Swiper    User      `gorm:"foreignKey:SwiperID;constraint:OnDelete:CASCADE"`
	TargetID  uuid.UUID `gorm:"type:uuid;not null;index:idx_swipe_pair,unique"`
	Target    User      `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
	Direction string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Swipe direction constants
const (
	SwipeDirectionLike = "like"
	SwipeDirectionPass = "pass"
)

// ValidDirection reports whether d is a recognized swipe direction.
func ValidDirection(d string) bool {
	return d == SwipeDirectionLike || d == SwipeDirectionPass
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Swipe) TableName() string {
	return "swipes"
}
