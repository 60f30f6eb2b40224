package service

import (
	"errors"

	"github.com/nomadcrew/nomad-backend/internal/apperr"
	"github.com/nomadcrew/nomad-backend/internal/models"
	"github.com/nomadcrew/nomad-backend/internal/repository"
	"github.com/nomadcrew/nomad-backend/pkg/bcrypt"
	"github.com/nomadcrew/nomad-backend/pkg/clock"
	jwtPkg "github.com/nomadcrew/nomad-backend/pkg/jwt"
	"gorm.io/gorm"
)

// WelcomeMailer sends the post-signup email.
type WelcomeMailer interface {
	SendWelcomeEmail(email, firstName string) error
}

type AuthService struct {
	userRepo *repository.UserRepository
	mailer   WelcomeMailer
	clock    clock.Clock
}

func NewAuthService(userRepo *repository.UserRepository, mailer WelcomeMailer, clk clock.Clock) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		clock:    clk,
	}
}

// Register creates a user. Username uniqueness is checked before email, so a
// request failing both reports the username clash.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	usernameTaken, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return nil, apperr.Internal("failed to check username", err)
	}
	if usernameTaken {
		return nil, apperr.Conflict("Username already exists")
	}

	emailTaken, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, apperr.Internal("failed to check email", err)
	}
	if emailTaken {
		return nil, apperr.Conflict("Email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   hashedPassword,
		LastActive: s.clock.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, apperr.Internal("token generation failed", err)
	}

	if s.mailer != nil {
		go func() {
			_ = s.mailer.SendWelcomeEmail(user.Email, user.FirstName)
		}()
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authorization("Invalid username or password")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, apperr.Authorization("Invalid username or password")
	}

	if err := s.userRepo.TouchLastActive(user.ID, s.clock.Now()); err != nil {
		return nil, apperr.Internal("failed to update last active", err)
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID)
	if err != nil {
		return nil, apperr.Internal("token generation failed", err)
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}
