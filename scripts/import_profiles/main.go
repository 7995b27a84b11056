package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sparkdate/spark-server/internal/models"
	"github.com/sparkdate/spark-server/internal/security"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Imports seed profiles from an xlsx file. Expected columns:
// email, password, display name, birth date (YYYY-MM-DD), gender,
// bio, latitude, longitude.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_profiles <profiles.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()

	totalImported := 0

	for _, sheetName := range sheets {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 8 { // Skip header or invalid rows
				continue
			}

			// row[0]: email
			// row[1]: password
			// row[2]: display name
			// row[3]: birth date
			// row[4]: gender
			// row[5]: bio
			// row[6]: latitude
			// row[7]: longitude

			birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(row[3]))
			if err != nil {
				fmt.Printf("Invalid birth date %q in row %d\n", row[3], i)
				continue
			}

			lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
			lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[7]), 64)
			if latErr != nil || lonErr != nil {
				fmt.Printf("Invalid coordinates in row %d\n", i)
				continue
			}

			hash, err := security.HashPassword(row[1])
			if err != nil {
				fmt.Printf("Error hashing password in row %d: %v\n", i, err)
				continue
			}

			now := time.Now().UTC()
			user := models.User{
				Email:             strings.ToLower(strings.TrimSpace(row[0])),
				PasswordHash:      hash,
				DisplayName:       strings.TrimSpace(row[2]),
				BirthDate:         birthDate,
				Gender:            strings.ToLower(strings.TrimSpace(row[4])),
				Bio:               strings.TrimSpace(row[5]),
				SearchGender:      models.SearchGenderAny,
				AgeMin:            18,
				AgeMax:            100,
				MaxDistanceKm:     100,
				Latitude:          lat,
				Longitude:         lon,
				LocationUpdatedAt: &now,
			}

			if err := db.Create(&user).Error; err != nil {
				fmt.Printf("Error creating profile in row %d: %v\n", i, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d profiles.\n", totalImported)
}
