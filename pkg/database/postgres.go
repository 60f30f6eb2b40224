package database

import (
	"log"
	"os"

	"github.com/nomadcrew/nomad-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey so callers can branch on them.
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.CityFact{},
		&models.CityImage{},
		&models.CityVisitLog{},
		&models.Trip{},
		&models.TripMember{},
		&models.Notification{},
		&models.Checklist{},
		&models.ChecklistItem{},
	)
	if err != nil {
		return err
	}

	return seedCities(db)
}

// seedCities inserts the starter catalog so a fresh deployment has cities to
// plan trips against. Existing rows are left untouched.
func seedCities(db *gorm.DB) error {
	cities := []models.City{
		{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522},
		{Name: "London", Latitude: 51.5074, Longitude: -0.1278},
		{Name: "New York", Latitude: 40.7128, Longitude: -74.0060},
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
		{Name: "Barcelona", Latitude: 41.3874, Longitude: 2.1686},
		{Name: "Rome", Latitude: 41.9028, Longitude: 12.4964},
		{Name: "Amsterdam", Latitude: 52.3676, Longitude: 4.9041},
		{Name: "Istanbul", Latitude: 41.0082, Longitude: 28.9784},
	}

	for _, city := range cities {
		var count int64
		db.Model(&models.City{}).Where("name = ?", city.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&city).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
