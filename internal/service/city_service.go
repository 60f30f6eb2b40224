package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/pkg/storage"
	"github.com/nomadcrew/nomad-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPopularCityLimit = 8
	CitySearchLimit         = 5
)

type CityService struct {
	cityRepo   *repository.CityRepository
	storage    storage.ObjectStorage
	httpClient *http.Client
	wikiAPI    string
	logger     *zap.Logger
}

func NewCityService(
	cityRepo *repository.CityRepository,
	objectStorage storage.ObjectStorage,
	httpClient *http.Client,
	wikiAPI string,
	logger *zap.Logger,
) *CityService {
	return &CityService{
		cityRepo:   cityRepo,
		storage:    objectStorage,
		httpClient: httpClient,
		wikiAPI:    wikiAPI,
		logger:     logger,
	}
}

// PopularCities lists cities by visit-log count, most visited first.
func (s *CityService) PopularCities(limit int) ([]models.PopularCityResponse, error) {
	if limit <= 0 {
		limit = DefaultPopularCityLimit
	}
	cities, err := s.cityRepo.Popular(limit)
	if err != nil {
		return nil, apperr.Internal("failed to list cities", err)
	}
	return cities, nil
}

// GetCity returns the city and whether the caller has a trip bound for it.
// The lookup itself is recorded as a visit; a failed visit write degrades to
// a logged no-op.
func (s *CityService) GetCity(cityID, userID uint) (*models.CityDetailResponse, error) {
	city, err := s.cityRepo.GetByID(cityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("City does not exist")
		}
		return nil, apperr.Internal("failed to load city", err)
	}

	hasVisited, err := s.cityRepo.HasVisited(cityID, userID)
	if err != nil {
		return nil, apperr.Internal("failed to check visits", err)
	}

	visitLog := &models.CityVisitLog{CityID: cityID, UserID: userID}
	if err := s.cityRepo.AddVisitLog(visitLog); err != nil {
		s.logger.Warn("failed to record city visit",
			zap.Uint("city_id", cityID), zap.Uint("user_id", userID), zap.Error(err))
	}

	return &models.CityDetailResponse{City: *city, HasVisited: hasVisited}, nil
}

func (s *CityService) SearchByPrefix(prefix string) ([]models.City, error) {
	cities, err := s.cityRepo.SearchByPrefix(prefix, CitySearchLimit)
	if err != nil {
		return nil, apperr.Internal("failed to search cities", err)
	}
	return cities, nil
}

func (s *CityService) Facts(cityID uint) ([]models.CityFact, error) {
	if err := s.requireCity(cityID); err != nil {
		return nil, err
	}
	facts, err := s.cityRepo.Facts(cityID)
	if err != nil {
		return nil, apperr.Internal("failed to load city facts", err)
	}
	return facts, nil
}

func (s *CityService) Images(cityID uint) ([]models.CityImage, error) {
	if err := s.requireCity(cityID); err != nil {
		return nil, err
	}
	images, err := s.cityRepo.Images(cityID)
	if err != nil {
		return nil, apperr.Internal("failed to load city images", err)
	}
	return images, nil
}

func (s *CityService) Visits(userID uint) ([]models.CityVisitResponse, error) {
	visits, err := s.cityRepo.VisitsByUser(userID)
	if err != nil {
		return nil, apperr.Internal("failed to load city visits", err)
	}
	return visits, nil
}

// UploadImage stores the file in object storage and records its URL.
func (s *CityService) UploadImage(cityID uint, file *multipart.FileHeader) (*models.CityImage, error) {
	if err := s.requireCity(cityID); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.Internal("failed to open upload", err)
	}
	defer src.Close()

	key := fmt.Sprintf("cities/%d/%s%s", cityID,
		utils.GenerateRandomString(10), filepath.Ext(file.Filename))
	publicURL, err := s.storage.Upload(key, src)
	if err != nil {
		return nil, apperr.Internal("failed to store image", err)
	}

	image := &models.CityImage{CityID: cityID, URL: publicURL}
	if err := s.cityRepo.AddImage(image); err != nil {
		return nil, apperr.Internal("failed to record image", err)
	}
	return image, nil
}

// Information fetches the city's Wikipedia extract through the cached HTTP
// client and splits it into sections.
func (s *CityService) Information(cityID uint) (map[string]string, error) {
	city, err := s.cityRepo.GetByID(cityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("City does not exist")
		}
		return nil, apperr.Internal("failed to load city", err)
	}

	requestURL := s.wikiAPI +
		"?action=query&prop=extracts&explaintext&format=json&titles=" +
		url.QueryEscape(city.Name)
	resp, err := s.httpClient.Get(requestURL)
	if err != nil {
		return nil, apperr.Unavailable("wikipedia request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Unavailable(
			fmt.Sprintf("wikipedia returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Unavailable("wikipedia response unreadable", err)
	}

	extract, err := parseWikiExtract(body)
	if err != nil {
		return nil, apperr.Unavailable("wikipedia response malformed", err)
	}

	return splitWikiSections(extract), nil
}

func (s *CityService) requireCity(cityID uint) error {
	exists, err := s.cityRepo.Exists(cityID)
	if err != nil {
		return apperr.Internal("failed to look up city", err)
	}
	if !exists {
		return apperr.NotFound("City does not exist")
	}
	return nil
}

func parseWikiExtract(body []byte) (string, error) {
	var payload struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	for _, page := range payload.Query.Pages {
		if page.Extract != "" {
			return page.Extract, nil
		}
	}
	return "", errors.New("no extract in response")
}

// splitWikiSections maps "== Heading ==" delimited plaintext into a section
// lookup. Text before the first heading lands under "summary".
func splitWikiSections(extract string) map[string]string {
	sections := make(map[string]string)
	current := "summary"
	var buf strings.Builder

	flush := func() {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			sections[current] = text
		}
		buf.Reset()
	}

	for _, line := range strings.Split(extract, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "==") && strings.HasSuffix(trimmed, "==") {
			flush()
			current = strings.TrimSpace(strings.Trim(trimmed, "= "))
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	flush()

	return sections
}
