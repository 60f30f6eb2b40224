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

func newChecklistService(t *testing.T) (*ChecklistService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return NewChecklistService(repository.NewChecklistRepository(db), clock.Fixed(now)), db
}

func TestChecklistLifecycle(t *testing.T) {
	svc, db := newChecklistService(t)
	alice := createTestUser(t, db, "alice")

	// First access creates an empty checklist.
	checklist, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, checklist.Items)

	item, err := svc.AddItem(alice.ID, models.ChecklistItemRequest{Item: "Passport"})
	require.NoError(t, err)
	assert.False(t, item.IsChecked)

	require.NoError(t, svc.ToggleItem(alice.ID, item.ID))
	checklist, err = svc.Get(alice.ID)
	require.NoError(t, err)
	require.Len(t, checklist.Items, 1)
	assert.True(t, checklist.Items[0].IsChecked)

	require.NoError(t, svc.DeleteItem(alice.ID, item.ID))
	checklist, err = svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, checklist.Items)
}

func TestChecklistValidationAndOwnership(t *testing.T) {
	svc, db := newChecklistService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.AddItem(alice.ID, models.ChecklistItemRequest{Item: ""})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.AddItem(alice.ID, models.ChecklistItemRequest{Item: "a very long checklist item"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	item, err := svc.AddItem(alice.ID, models.ChecklistItemRequest{Item: "Passport"})
	require.NoError(t, err)

	err = svc.DeleteItem(bob.ID, item.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	err = svc.DeleteItem(alice.ID, item.ID+1000)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
