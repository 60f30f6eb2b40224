package service

import (
	"fmt"
	"testing"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTripService(t *testing.T) (*TripService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	tripRepo := repository.NewTripRepository(db)
	userRepo := repository.NewUserRepository(db)
	cityRepo := repository.NewCityRepository(db)
	svc := NewTripService(tripRepo, userRepo, cityRepo, nil, zap.NewNop())
	return svc, db
}

func memberCount(t *testing.T, db *gorm.DB, tripID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.TripMember{}).
		Where("trip_id = ?", tripID).Count(&count).Error)
	return count
}

func TestCreateTripAddsCreatorAsSoleMember(t *testing.T) {
	svc, db := newTripService(t)
	creator := createTestUser(t, db, "alice")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(creator.ID, models.TripRequest{
		TripName:  "Paris Trip",
		CityID:    city.ID,
		StartDate: "2024-05-01",
	})
	require.NoError(t, err)
	require.NotZero(t, trip.ID)

	assert.Equal(t, int64(1), memberCount(t, db, trip.ID))

	// No notification is created for trip creation.
	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.Zero(t, notifications)
}

func TestCreateTripValidation(t *testing.T) {
	svc, db := newTripService(t)
	creator := createTestUser(t, db, "alice")
	city := createTestCity(t, db, "Lisbon")

	_, err := svc.CreateTrip(creator.ID, models.TripRequest{
		CityID:    city.ID,
		StartDate: "2024-05-01",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateTrip(creator.ID, models.TripRequest{
		TripName:  "Trip",
		CityID:    city.ID,
		StartDate: "not-a-date",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateTrip(creator.ID, models.TripRequest{
		TripName:  "Trip",
		CityID:    city.ID + 1000,
		StartDate: "2024-05-01",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetTripExcludesCallerFromMembers(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(trip.ID, alice.ID, bob.ID))

	view, err := svc.GetTrip(trip.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, view.Users, 1)
	assert.Equal(t, bob.ID, view.Users[0].ID)

	view, err = svc.GetTrip(trip.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, view.Users, 1)
	assert.Equal(t, alice.ID, view.Users[0].ID)
}

func TestGetTripAuthorization(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)

	_, err = svc.GetTrip(trip.ID, mallory.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = svc.GetTrip(trip.ID+1000, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListTripsOrderAndLimit(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	city := createTestCity(t, db, "Lisbon")

	dates := []string{"2024-01-01", "2024-03-01", "2024-02-01"}
	for i, date := range dates {
		_, err := svc.CreateTrip(alice.ID, models.TripRequest{
			TripName:  "Trip " + string(rune('A'+i)),
			CityID:    city.ID,
			StartDate: date,
		})
		require.NoError(t, err)
	}

	trips, err := svc.ListTrips(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, "Trip B", trips[0].Name)
	assert.Equal(t, "Trip C", trips[1].Name)
	assert.Equal(t, "Trip A", trips[2].Name)

	trips, err = svc.ListTrips(alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, trips, 2)
}

func TestListTripsDefaultCap(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	city := createTestCity(t, db, "Lisbon")

	for i := 0; i < 12; i++ {
		_, err := svc.CreateTrip(alice.ID, models.TripRequest{
			TripName:  "Trip " + string(rune('A'+i)),
			CityID:    city.ID,
			StartDate: fmt.Sprintf("2024-03-%02d", i+1),
		})
		require.NoError(t, err)
	}

	// Without an explicit limit the listing caps at ten, newest first.
	trips, err := svc.ListTrips(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, trips, 10)
	assert.Equal(t, "Trip L", trips[0].Name)
	assert.Equal(t, "Trip C", trips[9].Name)
}

func TestAddMemberCreatesNotificationAtomically(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(trip.ID, alice.ID, bob.ID))

	tripRepo := repository.NewTripRepository(db)
	isMember, err := tripRepo.IsMember(trip.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	var notification models.Notification
	require.NoError(t, db.Where("destined_user_id = ?", bob.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTrip, notification.Type)
	assert.Equal(t, alice.ID, notification.InitiatorUserID)
	assert.Contains(t, notification.Text, "Lisbon")
	assert.Contains(t, notification.Text, "alice Tester")
}

func TestAddMemberFailures(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	mallory := createTestUser(t, db, "mallory")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)

	// Requester not a member: no state change.
	err = svc.AddMember(trip.ID, mallory.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	assert.Equal(t, int64(1), memberCount(t, db, trip.ID))

	err = svc.AddMember(trip.ID+1000, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.AddMember(trip.ID, alice.ID, bob.ID+1000)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.AddMember(trip.ID, alice.ID, bob.ID))
	err = svc.AddMember(trip.ID, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRemoveMemberDoesNotDeleteTrip(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(trip.ID, alice.ID, bob.ID))

	require.NoError(t, svc.RemoveMember(trip.ID, alice.ID, bob.ID))
	assert.Equal(t, int64(1), memberCount(t, db, trip.ID))

	// Removing a non-member is a conflict.
	err = svc.RemoveMember(trip.ID, alice.ID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// The trip survives with its sole remaining member.
	var count int64
	require.NoError(t, db.Model(&models.Trip{}).Where("id = ?", trip.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLeaveTripDeletesOnLastMember(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Paris Trip", CityID: city.ID, StartDate: "2024-05-01",
	})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(trip.ID, alice.ID, bob.ID))

	deleted, err := svc.LeaveTrip(trip.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, int64(1), memberCount(t, db, trip.ID))

	deleted, err = svc.LeaveTrip(trip.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var count int64
	require.NoError(t, db.Model(&models.Trip{}).Where("id = ?", trip.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.Zero(t, memberCount(t, db, trip.ID))
}

func TestLeaveTripFailures(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Summer", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)

	_, err = svc.LeaveTrip(trip.ID, mallory.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = svc.LeaveTrip(trip.ID+1000, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRenameTrip(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	city := createTestCity(t, db, "Lisbon")

	trip, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Old Name", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RenameTrip(trip.ID, alice.ID, "New Name"))

	var renamed models.Trip
	require.NoError(t, db.First(&renamed, trip.ID).Error)
	assert.Equal(t, "New Name", renamed.Name)

	err = svc.RenameTrip(trip.ID, mallory.ID, "Stolen")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	err = svc.RenameTrip(trip.ID, alice.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = svc.RenameTrip(trip.ID, alice.ID, "this trip name is way over the thirty character cap")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCommonTrips(t *testing.T) {
	svc, db := newTripService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	city := createTestCity(t, db, "Lisbon")

	shared, err := svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Shared", CityID: city.ID, StartDate: "2024-07-01",
	})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(shared.ID, alice.ID, bob.ID))

	_, err = svc.CreateTrip(alice.ID, models.TripRequest{
		TripName: "Solo", CityID: city.ID, StartDate: "2024-08-01",
	})
	require.NoError(t, err)

	trips, err := svc.CommonTrips(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, shared.ID, trips[0].ID)

	// Same user is always a validation error regardless of data state.
	_, err = svc.CommonTrips(alice.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CommonTrips(alice.ID, bob.ID+1000)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
