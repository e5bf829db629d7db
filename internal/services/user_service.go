package services

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/repositories"
)

type UserService struct {
	repo         repositories.UserRepository
	authService  *AuthService
	emailService EmailService
}

// NewUserService wires the credential store; emailService may be nil to
// disable the welcome mail.
func NewUserService(repo repositories.UserRepository, authService *AuthService, emailService EmailService) *UserService {
	return &UserService{repo: repo, authService: authService, emailService: emailService}
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if !req.Role.Valid() {
		return nil, models.NewValidationError("unknown role: " + string(req.Role))
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil && err != models.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrConflict
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     req.FullName,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token. Absent user and
// password mismatch are indistinguishable to the caller.
func (s *UserService) Login(req *models.LoginRequest) (*models.TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.GetByEmail(email)
	if err == models.ErrNotFound {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !s.authService.CheckPassword(user.PasswordHash, req.Password) {
		return nil, models.ErrUnauthorized
	}

	token, err := s.authService.IssueToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
