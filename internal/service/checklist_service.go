package service

import (
	"errors"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/pkg/clock"
	"gorm.io/gorm"
)

type ChecklistService struct {
	checklistRepo *repository.ChecklistRepository
	clock         clock.Clock
}

func NewChecklistService(checklistRepo *repository.ChecklistRepository, clk clock.Clock) *ChecklistService {
	return &ChecklistService{checklistRepo: checklistRepo, clock: clk}
}

func (s *ChecklistService) Get(userID uint) (*models.ChecklistResponse, error) {
	checklist, err := s.checklistRepo.GetOrCreate(userID, s.clock.Now())
	if err != nil {
		return nil, apperr.Internal("failed to load checklist", err)
	}

	items, err := s.checklistRepo.Items(checklist.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load checklist items", err)
	}

	return &models.ChecklistResponse{
		ID:          checklist.ID,
		LastUpdated: checklist.LastUpdated,
		Items:       items,
	}, nil
}

func (s *ChecklistService) AddItem(userID uint, req models.ChecklistItemRequest) (*models.ChecklistItem, error) {
	if req.Item == "" {
		return nil, apperr.Validation("Item is required")
	}
	if len(req.Item) > 20 {
		return nil, apperr.Validation("Item must be at most 20 characters")
	}

	checklist, err := s.checklistRepo.GetOrCreate(userID, s.clock.Now())
	if err != nil {
		return nil, apperr.Internal("failed to load checklist", err)
	}

	item := &models.ChecklistItem{ChecklistID: checklist.ID, Item: req.Item}
	if err := s.checklistRepo.AddItem(item, s.clock.Now()); err != nil {
		return nil, apperr.Internal("failed to add checklist item", err)
	}
	return item, nil
}

func (s *ChecklistService) DeleteItem(userID, itemID uint) error {
	if err := s.requireOwnership(userID, itemID); err != nil {
		return err
	}
	if err := s.checklistRepo.DeleteItem(itemID, s.clock.Now()); err != nil {
		return apperr.Internal("failed to delete checklist item", err)
	}
	return nil
}

func (s *ChecklistService) ToggleItem(userID, itemID uint) error {
	item, err := s.getOwnedItem(userID, itemID)
	if err != nil {
		return err
	}
	if err := s.checklistRepo.SetItemChecked(itemID, !item.IsChecked, s.clock.Now()); err != nil {
		return apperr.Internal("failed to update checklist item", err)
	}
	return nil
}

func (s *ChecklistService) requireOwnership(userID, itemID uint) error {
	_, err := s.getOwnedItem(userID, itemID)
	return err
}

func (s *ChecklistService) getOwnedItem(userID, itemID uint) (*models.ChecklistItem, error) {
	item, err := s.checklistRepo.GetItem(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Checklist item does not exist")
		}
		return nil, apperr.Internal("failed to load checklist item", err)
	}

	checklist, err := s.checklistRepo.GetOrCreate(userID, s.clock.Now())
	if err != nil {
		return nil, apperr.Internal("failed to load checklist", err)
	}
	if item.ChecklistID != checklist.ID {
		return nil, apperr.Authorization("Checklist item belongs to another user")
	}
	return item, nil
}
