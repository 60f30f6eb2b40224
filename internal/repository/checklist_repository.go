package repository

import (
	"errors"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/models"
	"gorm.io/gorm"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// GetOrCreate returns the user's checklist, creating it on first access.
func (r *ChecklistRepository) GetOrCreate(userID uint, now time.Time) (*models.Checklist, error) {
	var checklist models.Checklist
	err := r.db.Where("user_id = ?", userID).First(&checklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		checklist = models.Checklist{UserID: userID, LastUpdated: now}
		if err := r.db.Create(&checklist).Error; err != nil {
			return nil, err
		}
		return &checklist, nil
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

func (r *ChecklistRepository) Items(checklistID uint) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	err := r.db.Where("checklist_id = ?", checklistID).Find(&items).Error
	return items, err
}

func (r *ChecklistRepository) GetItem(itemID uint) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := r.db.First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ChecklistRepository) AddItem(item *models.ChecklistItem, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return r.touch(tx, item.ChecklistID, now)
	})
}

func (r *ChecklistRepository) DeleteItem(itemID uint, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.ChecklistItem
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ChecklistItem{}, itemID).Error; err != nil {
			return err
		}
		return r.touch(tx, item.ChecklistID, now)
	})
}

func (r *ChecklistRepository) SetItemChecked(itemID uint, checked bool, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.ChecklistItem
		if err := tx.First(&item, itemID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ChecklistItem{}).Where("id = ?", itemID).
			Update("is_checked", checked).Error; err != nil {
			return err
		}
		return r.touch(tx, item.ChecklistID, now)
	})
}

func (r *ChecklistRepository) touch(tx *gorm.DB, checklistID uint, now time.Time) error {
	return tx.Model(&models.Checklist{}).Where("id = ?", checklistID).
		Update("last_updated", now).Error
}
