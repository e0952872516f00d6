package services_test

import (
	"fmt"
	"testing"
	"time"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret", time.Hour)

	user := &models.User{Username: "admin", Email: "admin@example.com", Password: "password123"}

	mockRepo.On("GetByUsername", "admin").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", user).Return(nil).Once()

	err := service.Register(user)

	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret", time.Hour)

	existing := &models.User{Username: "admin"}
	mockRepo.On("GetByUsername", "admin").Return(existing, nil).Once()

	err := service.Register(&models.User{Username: "admin", Email: "other@example.com", Password: "password123"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginAndValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret", time.Hour)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: "user-1", Username: "admin", Password: string(hashed)}

	mockRepo.On("GetByUsername", "admin").Return(user, nil).Once()

	token, err := service.Login("admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "admin", claims["name"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "secret", time.Hour)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: "user-1", Username: "admin", Password: string(hashed)}

	mockRepo.On("GetByUsername", "admin").Return(user, nil).Once()

	_, err = service.Login("admin", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	service := services.NewAuthService(new(MockUserRepository), "secret", time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
