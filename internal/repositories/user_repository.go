package repositories

import (
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email maps to ALREADY_EXISTS.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New(errors.ErrCodeAlreadyExists, "email already registered")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", userID)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.Where("email = ?", email).First(&user)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// UpdateProfile applies profile field changes. Hooks are skipped: the
// BeforeSave validation would run against the empty Model value, not the
// stored row, and the fields are already validated upstream.
func (r *UserRepository) UpdateProfile(userID uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.User{}).Where("id = ?", userID).Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}

	return nil
}

// UpdateLocation stores the user's latest coordinates.
func (r *UserRepository) UpdateLocation(userID uuid.UUID, lat, lon float64) error {
	now := time.Now().UTC()
	result := r.db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"latitude":            lat,
		"longitude":           lon,
		"location_updated_at": now,
	})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update location")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}

	return nil
}

// FindCandidates returns users with a known location outside the exclusion
// set, most recently located first. Age, gender, and distance filtering
// happens in the feed service.
func (r *UserRepository) FindCandidates(excludedIDs []uuid.UUID) ([]models.User, error) {
	query := r.db.Where("location_updated_at IS NOT NULL")
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}

	var users []models.User
	result := query.Order("location_updated_at DESC, id DESC").Find(&users)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to find candidates")
	}

	return users, nil
}
