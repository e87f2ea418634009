package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
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

func (m *MockUserRepository) UpdateLastLogin(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_CreateUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	// Test successful creation; the stored password must be a bcrypt hash
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	user, err := authService.CreateUser("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrConflict).Once()
	_, err = authService.CreateUser("testuser", "password123")
	assert.ErrorIs(t, err, repositories.ErrConflict)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertExpectations(t)

	// Test a too-short username, rejected before touching the repository
	_, err = authService.CreateUser("ab", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 characters")

	// Test a too-short password
	_, err = authService.CreateUser("testuser", "abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 4 characters")
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	mockRepo.On("UpdateLastLogin", user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	token, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, loggedIn.LastLogin)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["userId"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown username must be indistinguishable
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, _, errWrongPassword := authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, repositories.ErrNotFound).Once()
	_, _, errUnknownUser := authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, errUnknownUser, services.ErrInvalidCredentials)

	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["userId"])
	assert.Equal(t, "testuser", claims["username"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	// An empty store gets the default user
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	mockRepo.On("Count").Return(int64(0), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.EnsureDefaultAdmin("admin", "1234")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// A populated store is left alone
	mockRepo = new(MockUserRepository)
	authService = services.NewAuthService(mockRepo, "test_jwt_secret", time.Hour)

	mockRepo.On("Count").Return(int64(2), nil).Once()

	err = authService.EnsureDefaultAdmin("admin", "1234")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}
