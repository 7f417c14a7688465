package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier/internal/auth"
	apperrors "atelier/internal/errors"
	"atelier/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour)
}

func jwtRegisteredClaims(id string, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		role     string
		setup    func(repo *MockUserRepository)
		wantErr  string
		wantRole string
	}{
		{
			name:     "success with default role",
			username: "maya",
			email:    "maya@example.com",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "maya@example.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("FindByUsername", mock.Anything, "maya").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantRole: model.RoleEditor,
		},
		{
			name:     "explicit admin role",
			username: "root",
			email:    "root@example.com",
			role:     model.RoleAdmin,
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "root@example.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("FindByUsername", mock.Anything, "root").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantRole: model.RoleAdmin,
		},
		{
			name:     "email already registered",
			username: "maya",
			email:    "taken@example.com",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			wantErr: "email already registered",
		},
		{
			name:     "username already taken",
			username: "taken",
			email:    "maya@example.com",
			setup: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "maya@example.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			wantErr: "username already taken",
		},
		{
			name:     "unknown role rejected",
			username: "maya",
			email:    "maya@example.com",
			role:     "superuser",
			setup:    func(repo *MockUserRepository) {},
			wantErr:  "role must be admin or editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setup(repo)

			svc := NewAuthService(repo, newTestJWTService(), new(MockTokenStore))
			user, err := svc.Register(context.Background(), tt.username, tt.email, "secret99", tt.role)

			if tt.wantErr != "" {
				assert.Nil(t, user)
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantRole, user.Role)
				assert.NotEqual(t, "secret99", user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	password := "opensesame"

	t.Run("success updates last login and issues token", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := &model.User{
			ID:           uuid.New(),
			Email:        "maya@example.com",
			PasswordHash: hashPassword(t, password),
			Role:         model.RoleAdmin,
		}
		repo.On("FindByEmail", mock.Anything, "maya@example.com").Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		svc := NewAuthService(repo, newTestJWTService(), new(MockTokenStore))
		token, got, err := svc.Login(context.Background(), "maya@example.com", password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotNil(t, got.LastLogin)
		repo.AssertExpectations(t)
	})

	t.Run("unknown email and bad password are indistinguishable", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByEmail", mock.Anything, "maya@example.com").Return(&model.User{
			PasswordHash: hashPassword(t, password),
		}, nil)

		svc := NewAuthService(repo, newTestJWTService(), new(MockTokenStore))

		_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", password)
		_, _, badPassErr := svc.Login(context.Background(), "maya@example.com", "wrong")

		assert.EqualError(t, unknownErr, badPassErr.Error())
		var appErr *apperrors.Error
		assert.ErrorAs(t, unknownErr, &appErr)
		assert.Equal(t, 401, appErr.Status)
	})
}

func TestAuthService_Logout(t *testing.T) {
	store := new(MockTokenStore)
	store.On("BlacklistToken", mock.Anything, "jti-1", mock.AnythingOfType("time.Duration")).Return(nil)

	svc := NewAuthService(new(MockUserRepository), newTestJWTService(), store)
	err := svc.Logout(context.Background(), &auth.Claims{
		RegisteredClaims: jwtRegisteredClaims("jti-1", time.Now().Add(30*time.Minute)),
	})

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	current := "oldpassword"

	t.Run("wrong current password", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), newTestJWTService(), new(MockTokenStore))
		user := &model.User{PasswordHash: hashPassword(t, current)}

		err := svc.UpdatePassword(context.Background(), user, "nope", "newpassword")
		assert.EqualError(t, err, "current password is incorrect")
	})

	t.Run("success stores a new hash", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := &model.User{PasswordHash: hashPassword(t, current)}
		repo.On("Update", mock.Anything, user).Return(nil)

		svc := NewAuthService(repo, newTestJWTService(), new(MockTokenStore))
		err := svc.UpdatePassword(context.Background(), user, current, "newpassword")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
		repo.AssertExpectations(t)
	})
}
