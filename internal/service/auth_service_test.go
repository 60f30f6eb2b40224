package service

import (
	"testing"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, now time.Time) (*AuthService, *gorm.DB) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), nil, clock.Fixed(now)), db
}

func TestRegisterAndLogin(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newAuthService(t, now)

	resp, err := svc.Register(models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.Password)

	login, err := svc.Login(models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = svc.Login(models.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestRegisterDuplicateChecksUsernameFirst(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newAuthService(t, now)

	_, err := svc.Register(models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Password:  "secret123",
	})
	require.NoError(t, err)

	// Same username and email: the username clash wins.
	_, err = svc.Register(models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Password:  "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "Username already exists", apperr.Message(err))

	_, err = svc.Register(models.RegisterRequest{
		Username:  "alice2",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Password:  "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, "Email already exists", apperr.Message(err))
}

func TestLoginTouchesLastActive(t *testing.T) {
	registeredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, db := newAuthService(t, registeredAt)

	_, err := svc.Register(models.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Password:  "secret123",
	})
	require.NoError(t, err)

	loginAt := registeredAt.Add(48 * time.Hour)
	svc.clock = clock.Fixed(loginAt)

	_, err = svc.Login(models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.True(t, stored.LastActive.Equal(loginAt))
}
