package repository

import (
	"errors"

	"github.com/nomadcrew/nomad-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotMember reports that a membership row expected by a transactional
// operation was gone by the time the transaction ran.
var ErrNotMember = errors.New("user is not a member of trip")

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create persists the trip together with its first membership row. A trip
// never exists without at least one member.
func (r *TripRepository) Create(trip *models.Trip, creatorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		member := models.TripMember{TripID: trip.ID, UserID: creatorID}
		return tx.Create(&member).Error
	})
}

func (r *TripRepository) GetByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Preload("City").First(&trip, id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// IsMember is the single membership predicate used by every authorization
// check. It stays an indexed existence query so call sites never materialize
// the member list just to test containment.
func (r *TripRepository) IsMember(tripID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.TripMember{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *TripRepository) GetMembers(tripID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN trip_members ON trip_members.user_id = users.id").
		Where("trip_members.trip_id = ?", tripID).
		Find(&users).Error
	return users, err
}

func (r *TripRepository) ListForUser(userID uint, limit int) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Preload("City").
		Joins("JOIN trip_members ON trip_members.trip_id = trips.id").
		Where("trip_members.user_id = ?", userID).
		Order("trips.start_date DESC").
		Limit(limit).
		Find(&trips).Error
	return trips, err
}

func (r *TripRepository) CommonTrips(userID, otherID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Preload("City").
		Joins("JOIN trip_members m1 ON m1.trip_id = trips.id AND m1.user_id = ?", userID).
		Joins("JOIN trip_members m2 ON m2.trip_id = trips.id AND m2.user_id = ?", otherID).
		Find(&trips).Error
	return trips, err
}

func (r *TripRepository) UpdateName(tripID uint, name string) error {
	return r.db.Model(&models.Trip{}).Where("id = ?", tripID).
		Update("name", name).Error
}

// AddMemberWithNotification commits the membership row and its notification
// together. If either write fails the other is rolled back.
func (r *TripRepository) AddMemberWithNotification(member *models.TripMember, notification *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return tx.Create(notification).Error
	})
}

func (r *TripRepository) RemoveMember(tripID, userID uint) error {
	result := r.db.Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&models.TripMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// Leave removes the user's membership and, when that was the last one,
// deletes the trip in the same transaction. The trip row is locked first so
// concurrent leavers serialize: under READ COMMITTED, two unserialized
// leavers of a two-member trip would each count the other's uncommitted
// membership delete as still present and neither would delete the trip.
func (r *TripRepository) Leave(tripID, userID uint) (tripDeleted bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var trip models.Trip
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotMember
			}
			return err
		}

		result := tx.Where("trip_id = ? AND user_id = ?", tripID, userID).
			Delete(&models.TripMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotMember
		}

		var remaining int64
		if err := tx.Model(&models.TripMember{}).
			Where("trip_id = ?", tripID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&models.Trip{}, tripID).Error; err != nil {
				return err
			}
			tripDeleted = true
		}
		return nil
	})
	return tripDeleted, err
}

func (r *TripRepository) MemberCount(tripID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.TripMember{}).
		Where("trip_id = ?", tripID).
		Count(&count).Error
	return count, err
}

func (r *TripRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Trip{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
