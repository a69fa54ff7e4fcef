package service

import (
	"context"
	"errors"
	"strings"

	"github.com/paprooms/server/internal/auth"
	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     models.Role
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.userRepo.FindByEmail(ctx, nil, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	role := in.Role
	if role != models.RoleOwner {
		role = models.RoleGuest // admin accounts are provisioned out of band
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         role,
		Provider:     models.ProviderLocal,
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// Federated-only accounts carry no usable password hash.
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
