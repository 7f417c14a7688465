package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier/internal/auth"
	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/repository"
)

const bcryptCost = 10

// ErrInvalidCredentials is returned when email or password is incorrect.
// Unknown email and wrong password are deliberately indistinguishable so
// the endpoint cannot be used to enumerate accounts.
var ErrInvalidCredentials = apperrors.Auth("invalid credentials")

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	UpdatePassword(ctx context.Context, user *model.User, currentPassword, newPassword string) error
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, username, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleEditor
	}
	if role != model.RoleAdmin && role != model.RoleEditor {
		return nil, apperrors.Validation("role must be admin or editor")
	}

	if err := s.ensureNotTaken(ctx, username, email); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) ensureNotTaken(ctx context.Context, username, email string) error {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return apperrors.Validation("email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return apperrors.Validation("username already taken")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	return nil
}

// Login authenticates a user and issues an access token. The user's
// lastLogin timestamp is updated on success.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// UpdatePassword changes the user's password after verifying the current one.
func (s *authService) UpdatePassword(ctx context.Context, user *model.User, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.Auth("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Logout blacklists the presented token until its natural expiry, so it can
// no longer be replayed even if the client keeps a copy.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := s.jwtService.Expiry()
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.tokenStore.BlacklistToken(ctx, claims.ID, ttl)
}
