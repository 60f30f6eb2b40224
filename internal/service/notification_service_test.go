package service

import (
	"testing"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return NewNotificationService(repository.NewNotificationRepository(db)), db
}

func TestNotificationCreateAndList(t *testing.T) {
	svc, db := newNotificationService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Create(alice.ID, bob.ID, "first", models.NotificationCommon))
	require.NoError(t, svc.Create(alice.ID, bob.ID, "second", models.NotificationTrip))

	// Nudge created_at apart so the ordering is unambiguous.
	require.NoError(t, db.Model(&models.Notification{}).
		Where("text = ?", "second").
		Update("created_at", time.Now().Add(time.Minute)).Error)

	notifications, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "second", notifications[0].Text)
	assert.Equal(t, "first", notifications[1].Text)
	assert.Equal(t, alice.Username, notifications[0].Initiator.Username)

	// The initiator sees nothing addressed to them.
	notifications, err = svc.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, db := newNotificationService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Create(alice.ID, bob.ID, "hello", models.NotificationCommon))

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	require.False(t, notification.IsRead)

	require.NoError(t, svc.MarkRead(notification.ID, bob.ID))
	require.NoError(t, db.First(&notification, notification.ID).Error)
	assert.True(t, notification.IsRead)

	// Second call is a no-op success.
	require.NoError(t, svc.MarkRead(notification.ID, bob.ID))
	require.NoError(t, db.First(&notification, notification.ID).Error)
	assert.True(t, notification.IsRead)
}

func TestMarkReadFailures(t *testing.T) {
	svc, db := newNotificationService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Create(alice.ID, bob.ID, "hello", models.NotificationCommon))

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)

	// Only the destined user may mark it read.
	err := svc.MarkRead(notification.ID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	err = svc.MarkRead(notification.ID+1000, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestMarkAllRead(t *testing.T) {
	svc, db := newNotificationService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Create(alice.ID, bob.ID, "one", models.NotificationCommon))
	require.NoError(t, svc.Create(alice.ID, bob.ID, "two", models.NotificationCommon))

	count, err := svc.MarkAllRead(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Zero affected is a success, not an error.
	count, err = svc.MarkAllRead(bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	notifications, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	for _, n := range notifications {
		assert.True(t, n.IsRead)
	}
}
