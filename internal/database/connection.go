package database

import (
	"fmt"
	"time"

	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Unique-violation errors must surface as gorm.ErrDuplicatedKey so the
		// swipe/match services can recover from concurrent inserts.
		TranslateError:         true,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(500)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Swipe{},
		&models.Match{},
		&models.Message{},
		&models.Block{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedDemoProfiles inserts a handful of demo users for local development.
// It is a no-op when any user already exists.
func SeedDemoProfiles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding demo profiles...")

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	seed := []models.User{
		{
			Email:             "alice@example.com",
			DisplayName:       "Alice",
			Gender:            models.GenderFemale,
			BirthDate:         time.Date(1996, 4, 12, 0, 0, 0, 0, time.UTC),
			Bio:               "Coffee, climbing, bad puns.",
			SearchGender:      models.SearchGenderMale,
			AgeMin:            24,
			AgeMax:            35,
			MaxDistanceKm:     50,
			Latitude:          52.2297,
			Longitude:         21.0122,
			LocationUpdatedAt: &now,
		},
		{
			Email:             "bob@example.com",
			DisplayName:       "Bob",
			Gender:            models.GenderMale,
			BirthDate:         time.Date(1993, 9, 3, 0, 0, 0, 0, time.UTC),
			Bio:               "Runner, amateur cook.",
			SearchGender:      models.SearchGenderFemale,
			AgeMin:            22,
			AgeMax:            34,
			MaxDistanceKm:     50,
			Latitude:          52.2370,
			Longitude:         21.0175,
			LocationUpdatedAt: &now,
		},
		{
			Email:             "carol@example.com",
			DisplayName:       "Carol",
			Gender:            models.GenderFemale,
			BirthDate:         time.Date(1998, 1, 25, 0, 0, 0, 0, time.UTC),
			Bio:               "Museums and street food.",
			SearchGender:      models.SearchGenderAny,
			AgeMin:            20,
			AgeMax:            40,
			MaxDistanceKm:     30,
			Latitude:          52.2500,
			Longitude:         21.0000,
			LocationUpdatedAt: &now,
		},
	}

	for i := range seed {
		seed[i].PasswordHash = string(hash)
	}

	return db.Create(&seed).Error
}
