package service

import (
	"errors"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/pkg/clock"
	"gorm.io/gorm"
)

// Users whose last activity falls inside this window count as active for
// analytics.
const ActiveStatusWindow = 30 * 24 * time.Hour

type UserService struct {
	userRepo *repository.UserRepository
	clock    clock.Clock
}

func NewUserService(userRepo *repository.UserRepository, clk clock.Clock) *UserService {
	return &UserService{userRepo: userRepo, clock: clk}
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User does not exist")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Internal("failed to update user", err)
	}
	return user, nil
}

// Analytics returns the user population counts.
func (s *UserService) Analytics() (*models.UserAnalyticsResponse, error) {
	since := s.clock.Now().Add(-ActiveStatusWindow)

	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, apperr.Internal("failed to count users", err)
	}
	verified, err := s.userRepo.CountVerified()
	if err != nil {
		return nil, apperr.Internal("failed to count verified users", err)
	}
	active, err := s.userRepo.CountActiveSince(since)
	if err != nil {
		return nil, apperr.Internal("failed to count active users", err)
	}
	activeVerified, err := s.userRepo.CountActiveVerifiedSince(since)
	if err != nil {
		return nil, apperr.Internal("failed to count active verified users", err)
	}

	return &models.UserAnalyticsResponse{
		Total:          total,
		Active:         active,
		Verified:       verified,
		ActiveVerified: activeVerified,
	}, nil
}
