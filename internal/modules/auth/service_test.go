package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roomshare/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && u.ID == "" {
		u.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID string, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func hashOf(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	tokens := new(MockTokenIssuer)
	tokens.On("GenerateToken", "generated-id", "user").Return("token123", nil)

	service := NewService(users, tokens)

	result, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "Sup3rSecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token123", result.AccessToken)
	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	// the hash never leaves the service
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{ID: "u1", Username: "alice"}, nil)

	service := NewService(users, new(MockTokenIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "new@example.com",
		Password: "Sup3rSecret",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	users.AssertNotCalled(t, "Create")
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "newname").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{ID: "u1"}, nil)

	service := NewService(users, new(MockTokenIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "newname",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_WeakPasswords(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockTokenIssuer))

	weak := []string{
		"Sh0rt",        // under 8 characters
		"alllower1",    // no upper
		"ALLUPPER1",    // no lower
		"NoDigitsHere", // no digit
	}
	for _, password := range weak {
		_, err := service.Register(context.Background(), RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: password,
		})
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", password)
	}
}

func TestService_Login_ByUsername(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hashOf("Sup3rSecret"),
		Role:         domain.RoleUser,
	}, nil)
	users.On("TouchLastLogin", mock.Anything, "u1", mock.Anything).Return(nil)

	tokens := new(MockTokenIssuer)
	tokens.On("GenerateToken", "u1", "user").Return("token123", nil)

	service := NewService(users, tokens)

	result, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "Sup3rSecret"})

	assert.NoError(t, err)
	assert.Equal(t, "token123", result.AccessToken)
	assert.NotNil(t, result.User.LastLogin)
	users.AssertNotCalled(t, "GetByEmail")
}

func TestService_Login_ByEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "u1",
		Username:     "alice",
		PasswordHash: hashOf("Sup3rSecret"),
		Role:         domain.RoleUser,
	}, nil)
	users.On("TouchLastLogin", mock.Anything, "u1", mock.Anything).Return(nil)

	tokens := new(MockTokenIssuer)
	tokens.On("GenerateToken", "u1", "user").Return("token123", nil)

	service := NewService(users, tokens)

	// an '@' in the handle routes the lookup by email
	_, err := service.Login(context.Background(), LoginRequest{Username: "alice@example.com", Password: "Sup3rSecret"})

	assert.NoError(t, err)
	users.AssertNotCalled(t, "GetByUsername")
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hashOf("Sup3rSecret"),
	}, nil)

	service := NewService(users, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(users, new(MockTokenIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})

	// unknown user and bad password are indistinguishable to the caller
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ChangePassword_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hashOf("OldSecret1"),
	}, nil)
	users.On("UpdatePasswordHash", mock.Anything, "u1", mock.Anything).Return(nil)

	service := NewService(users, new(MockTokenIssuer))

	err := service.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "OldSecret1",
		NewPassword:     "NewSecret2",
	})

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hashOf("OldSecret1"),
	}, nil)

	service := NewService(users, new(MockTokenIssuer))

	err := service.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "NewSecret2",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "UpdatePasswordHash")
}
