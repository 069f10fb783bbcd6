package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"letterflow/internal/auth"
	"letterflow/internal/models"
	"letterflow/internal/repository"
)

// ErrInvalidCredentials covers both unknown username and wrong password.
// The two are indistinguishable to the caller so accounts cannot be
// enumerated.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     repository.UserStore
	jwtSecret string
}

func NewAuthService(users repository.UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type AuthResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

// Register creates a requester account. Reviewer and approver accounts are
// provisioned by seeding, never self-service.
func (s *AuthService) Register(ctx context.Context, username, password, name, email string) (*AuthResult, error) {
	if username == "" || password == "" || name == "" {
		return nil, errors.New("username, password, and name are required")
	}
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already registered")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleRequester,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

// SeedUsers creates one account per role if it does not exist yet.
func (s *AuthService) SeedUsers(ctx context.Context, password string) error {
	seeds := []models.User{
		{Username: "requester", Name: "Demo Requester", Email: "requester@letterflow.local", Role: models.RoleRequester},
		{Username: "reviewer", Name: "Demo Reviewer", Email: "reviewer@letterflow.local", Role: models.RoleReviewer},
		{Username: "approver", Name: "Demo Approver", Email: "approver@letterflow.local", Role: models.RoleApprover},
	}
	for _, seed := range seeds {
		existing, err := s.users.FindByUsername(ctx, seed.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		seed.ID = uuid.NewString()
		seed.PasswordHash = hash
		seed.CreatedAt = time.Now().UTC()
		if err := s.users.Create(ctx, &seed); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.Username, err)
		}
	}
	return nil
}
