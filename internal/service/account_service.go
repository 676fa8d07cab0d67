package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quizboard/internal/model"
	"quizboard/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// AccountService handles registration and login, issuing tokens on
// success
type AccountService struct {
	users   repository.UserRepo
	authSvc *AuthService
}

// NewAccountService creates a new account service
func NewAccountService(users repository.UserRepo, authSvc *AuthService) *AccountService {
	return &AccountService{
		users:   users,
		authSvc: authSvc,
	}
}

// Register creates a user and returns a signed token
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error) {
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.respondWithToken(user)
}

// Login verifies credentials and returns a signed token
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(user)
}

func (s *AccountService) respondWithToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.authSvc.SignToken(user.Username, user.Email, user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}
