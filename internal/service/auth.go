package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusevents/backend/internal/auth"
	"github.com/campusevents/backend/internal/config"
	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles account registration and login sessions.
type AuthService struct {
	users      UserStore
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, cfg config.Auth) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email      string         `json:"email"`
	Password   string         `json:"password"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	Department string         `json:"department"`
	Role       model.UserRole `json:"role"`
}

// Register validates the request, creates the account, and starts a
// session. Students are approved immediately; organizers stay unapproved
// until an admin acts and cannot log in before that.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = model.RoleStudent
	}

	if !isValidEmail(req.Email) {
		return nil, "", fmt.Errorf("email is not a valid email address")
	}
	if len(req.Password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters")
	}
	if req.Name == "" {
		return nil, "", fmt.Errorf("name is required")
	}
	if !model.ValidRole(req.Role) {
		return nil, "", fmt.Errorf("role must be one of student, organizer, admin")
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		ID:         uuid.New().String(),
		Email:      req.Email,
		Password:   hash,
		Name:       req.Name,
		Phone:      strings.TrimSpace(req.Phone),
		Department: strings.TrimSpace(req.Department),
		Role:       req.Role,
		IsApproved: req.Role != model.RoleOrganizer,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", repository.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.IssueToken(s.secret, s.tokenTTL, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login authenticates the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("look up user: %w", err)
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", ErrAccountDeactivated
	}
	if u.Role == model.RoleOrganizer && !u.IsApproved {
		return nil, "", ErrOrganizerNotApproved
	}

	token, err := auth.IssueToken(s.secret, s.tokenTTL, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// UserByID loads the account behind a validated token.
func (s *AuthService) UserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.UserByID(ctx, id)
}
