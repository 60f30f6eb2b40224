package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		FirstName:  username,
		LastName:   "Tester",
		Password:   "hashed-password",
		LastActive: time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCity(t *testing.T, db *gorm.DB, name string) *models.City {
	t.Helper()

	city := &models.City{Name: name}
	require.NoError(t, db.Create(city).Error)
	return city
}
