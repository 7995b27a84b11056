package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	DisplayName       string     `gorm:"type:varchar(100);not null"`
	BirthDate         time.Time  `gorm:"not null"`
	Gender            string     `gorm:"type:varchar(10);not null"`
	Bio               string     `gorm:"type:varchar(500)"`
	SearchGender      string     `gorm:"type:varchar(10);default:'any'"`
	AgeMin            int        `gorm:"default:18"`
	AgeMax            int        `gorm:"default:100"`
	MaxDistanceKm     int        `gorm:"default:50"`
	Latitude          float64    `gorm:"type:float"`
	Longitude         float64    `gorm:"type:float"`
	LocationUpdatedAt *time.Time `gorm:"index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime"`
	Distance          float64    `gorm:"-"` // Filled when returned from a feed query
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Search preference constants
const (
	SearchGenderMale   = "male"
	SearchGenderFemale = "female"
	SearchGenderAny    = "any"
)

// HasLocation reports whether the user has ever shared a location.
func (u *User) HasLocation() bool {
	return u.LocationUpdatedAt != nil
}

// Age returns the user's age in whole years at the given instant.
func (u *User) Age(now time.Time) int {
	age := now.Year() - u.BirthDate.Year()
	if u.BirthDate.AddDate(age, 0, 0).After(now) {
		age--
	}
	return age
}

// BeforeCreate hook to assign an ID when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Gender != GenderMale && u.Gender != GenderFemale {
		return gorm.ErrInvalidData
	}

	validSearch := map[string]bool{
		SearchGenderMale:   true,
		SearchGenderFemale: true,
		SearchGenderAny:    true,
	}
	if !validSearch[u.SearchGender] {
		return gorm.ErrInvalidData
	}

	if u.AgeMin < 18 || u.AgeMax > 100 || u.AgeMin > u.AgeMax {
		return gorm.ErrInvalidData
	}

	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
