package repository

import (
	"github.com/nomadcrew/nomad-backend/internal/models"
	"gorm.io/gorm"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) GetByID(id uint) (*models.City, error) {
	var city models.City
	err := r.db.First(&city, id).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.City{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CityRepository) SearchByPrefix(prefix string, limit int) ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("name LIKE ?", prefix+"%").Limit(limit).Find(&cities).Error
	return cities, err
}

// Popular returns cities ordered by how often they were looked up.
func (r *CityRepository) Popular(limit int) ([]models.PopularCityResponse, error) {
	var cities []models.City
	err := r.db.
		Select("cities.*, COUNT(city_visit_logs.id) AS visit_count").
		Joins("LEFT JOIN city_visit_logs ON city_visit_logs.city_id = cities.id").
		Group("cities.id").
		Order("visit_count DESC").
		Limit(limit).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}

	popular := make([]models.PopularCityResponse, 0, len(cities))
	for _, city := range cities {
		var count int64
		if err := r.db.Model(&models.CityVisitLog{}).
			Where("city_id = ?", city.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		popular = append(popular, models.PopularCityResponse{City: city, VisitCount: count})
	}
	return popular, nil
}

func (r *CityRepository) Facts(cityID uint) ([]models.CityFact, error) {
	var facts []models.CityFact
	err := r.db.Where("city_id = ?", cityID).Find(&facts).Error
	return facts, err
}

func (r *CityRepository) Images(cityID uint) ([]models.CityImage, error) {
	var images []models.CityImage
	err := r.db.Where("city_id = ?", cityID).Find(&images).Error
	return images, err
}

func (r *CityRepository) AddImage(image *models.CityImage) error {
	return r.db.Create(image).Error
}

func (r *CityRepository) AddVisitLog(log *models.CityVisitLog) error {
	return r.db.Create(log).Error
}

// HasVisited reports whether the user belongs to any trip bound for the city.
func (r *CityRepository) HasVisited(cityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Trip{}).
		Joins("JOIN trip_members ON trip_members.trip_id = trips.id").
		Where("trips.city_id = ? AND trip_members.user_id = ?", cityID, userID).
		Count(&count).Error
	return count > 0, err
}

// VisitsByUser returns the user's lookup history grouped by city, most
// visited first.
func (r *CityRepository) VisitsByUser(userID uint) ([]models.CityVisitResponse, error) {
	type visitRow struct {
		CityID     uint
		VisitCount int64
	}

	var rows []visitRow
	err := r.db.Model(&models.CityVisitLog{}).
		Select("city_id, COUNT(id) AS visit_count").
		Where("user_id = ?", userID).
		Group("city_id").
		Order("visit_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	visits := make([]models.CityVisitResponse, 0, len(rows))
	for _, row := range rows {
		city, err := r.GetByID(row.CityID)
		if err != nil {
			return nil, err
		}
		visits = append(visits, models.CityVisitResponse{City: *city, VisitCount: row.VisitCount})
	}
	return visits, nil
}
