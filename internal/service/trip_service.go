package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultTripListLimit = 10

// TripInviteMailer sends the best-effort email companion of a TRIP
// notification.
type TripInviteMailer interface {
	SendTripInviteEmail(email, cityName, inviterName string) error
}

type TripService struct {
	tripRepo *repository.TripRepository
	userRepo *repository.UserRepository
	cityRepo *repository.CityRepository
	mailer   TripInviteMailer
	logger   *zap.Logger
}

func NewTripService(
	tripRepo *repository.TripRepository,
	userRepo *repository.UserRepository,
	cityRepo *repository.CityRepository,
	mailer TripInviteMailer,
	logger *zap.Logger,
) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		userRepo: userRepo,
		cityRepo: cityRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// CreateTrip persists a trip with the creator as its sole member.
func (s *TripService) CreateTrip(creatorID uint, req models.TripRequest) (*models.Trip, error) {
	if req.TripName == "" || req.StartDate == "" || req.CityID == 0 {
		return nil, apperr.Validation("Missing parameters in request. Send trip_name, city_id, start_date")
	}
	if len(req.TripName) > 30 {
		return nil, apperr.Validation("Trip name must be at most 30 characters")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperr.Validation("Invalid start_date, expected YYYY-MM-DD")
	}

	exists, err := s.cityRepo.Exists(req.CityID)
	if err != nil {
		return nil, apperr.Internal("failed to look up city", err)
	}
	if !exists {
		return nil, apperr.NotFound("City does not exist")
	}

	trip := &models.Trip{
		Name:      req.TripName,
		CityID:    req.CityID,
		StartDate: startDate,
	}
	if err := s.tripRepo.Create(trip, creatorID); err != nil {
		return nil, apperr.Internal("failed to create trip", err)
	}
	return trip, nil
}

// GetTrip returns the trip view for a member. The member list holds the
// other participants, the caller is left out.
func (s *TripService) GetTrip(tripID, userID uint) (*models.TripResponse, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Trip does not exist")
		}
		return nil, apperr.Internal("failed to load trip", err)
	}

	if err := s.requireMember(tripID, userID); err != nil {
		return nil, err
	}

	members, err := s.tripRepo.GetMembers(tripID)
	if err != nil {
		return nil, apperr.Internal("failed to load trip members", err)
	}

	return buildTripResponse(trip, members, userID), nil
}

func (s *TripService) ListTrips(userID uint, limit int) ([]models.TripSummary, error) {
	if limit <= 0 {
		limit = DefaultTripListLimit
	}

	trips, err := s.tripRepo.ListForUser(userID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to list trips", err)
	}

	summaries := make([]models.TripSummary, 0, len(trips))
	for _, trip := range trips {
		summaries = append(summaries, models.TripSummary{
			ID:        trip.ID,
			Name:      trip.Name,
			CityID:    trip.CityID,
			CityName:  trip.City.Name,
			StartDate: trip.StartDate,
		})
	}
	return summaries, nil
}

// AddMember associates the target user with the trip and records a TRIP
// notification for them. Both writes commit in one transaction.
func (s *TripService) AddMember(tripID, requesterID, targetID uint) error {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Trip does not exist")
		}
		return apperr.Internal("failed to load trip", err)
	}

	if err := s.requireMember(tripID, requesterID); err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User does not exist")
		}
		return apperr.Internal("failed to load user", err)
	}

	alreadyMember, err := s.tripRepo.IsMember(tripID, targetID)
	if err != nil {
		return apperr.Internal("failed to check membership", err)
	}
	if alreadyMember {
		return apperr.Conflict("User already associated with trip")
	}

	requester, err := s.userRepo.GetByID(requesterID)
	if err != nil {
		return apperr.Internal("failed to load user", err)
	}

	member := &models.TripMember{TripID: tripID, UserID: targetID}
	notification := &models.Notification{
		InitiatorUserID: requesterID,
		DestinedUserID:  targetID,
		Text: fmt.Sprintf("You are added to %s trip by %s.",
			trip.City.Name, requester.FullName()),
		Type: models.NotificationTrip,
	}
	if err := s.tripRepo.AddMemberWithNotification(member, notification); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent add won the race on the membership row.
			return apperr.Conflict("User already associated with trip")
		}
		return apperr.Internal("Error while creating notification", err)
	}

	if s.mailer != nil {
		go func() {
			// The in-app notification is committed, email is best-effort.
			if err := s.mailer.SendTripInviteEmail(target.Email, trip.City.Name, requester.FullName()); err != nil {
				s.logger.Warn("failed to send trip invite email",
					zap.String("email", target.Email), zap.Error(err))
			}
		}()
	}
	return nil
}

// RemoveMember dissociates the target user from the trip. It never deletes
// the trip: the requester must be a member, so membership cannot reach zero
// through this path.
func (s *TripService) RemoveMember(tripID, requesterID, targetID uint) error {
	exists, err := s.tripRepo.Exists(tripID)
	if err != nil {
		return apperr.Internal("failed to look up trip", err)
	}
	if !exists {
		return apperr.NotFound("Trip does not exist")
	}

	if err := s.requireMember(tripID, requesterID); err != nil {
		return err
	}

	userExists, err := s.userRepo.Exists(targetID)
	if err != nil {
		return apperr.Internal("failed to look up user", err)
	}
	if !userExists {
		return apperr.NotFound("User does not exist")
	}

	if err := s.tripRepo.RemoveMember(tripID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotMember) {
			return apperr.Conflict("User already not a part of trip")
		}
		return apperr.Internal("failed to remove member", err)
	}
	return nil
}

// LeaveTrip removes the caller from the trip, deleting the trip when the
// caller was its last member. Returns whether the trip was deleted.
func (s *TripService) LeaveTrip(tripID, userID uint) (bool, error) {
	exists, err := s.tripRepo.Exists(tripID)
	if err != nil {
		return false, apperr.Internal("failed to look up trip", err)
	}
	if !exists {
		return false, apperr.NotFound("Trip does not exist")
	}

	if err := s.requireMember(tripID, userID); err != nil {
		return false, err
	}

	deleted, err := s.tripRepo.Leave(tripID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotMember) {
			// Membership vanished between the check and the transaction.
			return false, apperr.Authorization("User not a part of trip")
		}
		return false, apperr.Internal("failed to leave trip", err)
	}
	return deleted, nil
}

func (s *TripService) RenameTrip(tripID, userID uint, name string) error {
	if name == "" {
		return apperr.Validation("Trip name is required")
	}
	if len(name) > 30 {
		return apperr.Validation("Trip name must be at most 30 characters")
	}

	exists, err := s.tripRepo.Exists(tripID)
	if err != nil {
		return apperr.Internal("failed to look up trip", err)
	}
	if !exists {
		return apperr.NotFound("Trip does not exist")
	}

	if err := s.requireMember(tripID, userID); err != nil {
		return err
	}

	if err := s.tripRepo.UpdateName(tripID, name); err != nil {
		return apperr.Internal("failed to rename trip", err)
	}
	return nil
}

// CommonTrips returns the trips both users are members of.
func (s *TripService) CommonTrips(userID, otherID uint) ([]models.TripResponse, error) {
	if userID == otherID {
		return nil, apperr.Validation("Requested user and logged in user are same.")
	}

	exists, err := s.userRepo.Exists(otherID)
	if err != nil {
		return nil, apperr.Internal("failed to look up user", err)
	}
	if !exists {
		return nil, apperr.NotFound("User does not exist")
	}

	trips, err := s.tripRepo.CommonTrips(userID, otherID)
	if err != nil {
		return nil, apperr.Internal("failed to list common trips", err)
	}

	views := make([]models.TripResponse, 0, len(trips))
	for i := range trips {
		members, err := s.tripRepo.GetMembers(trips[i].ID)
		if err != nil {
			return nil, apperr.Internal("failed to load trip members", err)
		}
		views = append(views, *buildTripResponse(&trips[i], members, userID))
	}
	return views, nil
}

func (s *TripService) requireMember(tripID, userID uint) error {
	isMember, err := s.tripRepo.IsMember(tripID, userID)
	if err != nil {
		return apperr.Internal("failed to check membership", err)
	}
	if !isMember {
		return apperr.Authorization("User not a part of trip")
	}
	return nil
}

func buildTripResponse(trip *models.Trip, members []models.User, viewerID uint) *models.TripResponse {
	users := make([]models.UserResponse, 0, len(members))
	for _, member := range members {
		if member.ID == viewerID {
			continue
		}
		users = append(users, models.NewUserResponse(member))
	}

	return &models.TripResponse{
		ID:        trip.ID,
		Name:      trip.Name,
		City:      models.CityResponse{ID: trip.City.ID, Name: trip.City.Name},
		StartDate: trip.StartDate,
		IsPublic:  trip.IsPublic,
		Users:     users,
	}
}
