package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
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

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockGateway is a mock implementation of identity.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SignUp(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newRegistrationService(repo *MockUserRepository, gateway *MockGateway) *services.RegistrationService {
	tokens := services.NewTokenService(repo, "test_jwt_secret")
	return services.NewRegistrationService(repo, gateway, tokens)
}

func TestRegistrationService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	req := &models.RegisterRequest{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", req.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).Return(nil, repositories.ErrNotFound).Once()
	mockGateway.On("SignUp", mock.Anything, req.Email, req.Password).
		Return("remote-id-123", nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, pair, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "remote-id-123", user.ID, "local id must be the gateway-issued token")
	assert.Equal(t, "testuser", user.Username)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	mockGateway.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRegistrationService_Register_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	_, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, services.ErrRegistrationInvalid)

	// No external call and no local record when validation fails.
	mockGateway.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegistrationService_Register_GatewayRejection(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	req := &models.RegisterRequest{
		Email:    "taken@example.com",
		Username: "testuser",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", req.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).Return(nil, repositories.ErrNotFound).Once()
	mockGateway.On("SignUp", mock.Anything, req.Email, req.Password).
		Return("", fmt.Errorf("User already registered")).Once()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrRegistrationInvalid)
	assert.Contains(t, err.Error(), "User already registered",
		"gateway message passes through to the caller")

	// A gateway rejection must never create a local user.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockGateway.AssertExpectations(t)
}

func TestRegistrationService_Register_ExistingUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	req := &models.RegisterRequest{
		Email:    "new@example.com",
		Username: "taken",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", req.Username).
		Return(&models.User{ID: "someone-else"}, nil).Once()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrRegistrationConflict)

	// A known-local duplicate must not create a remote identity.
	mockGateway.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegistrationService_Register_ExistingEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	req := &models.RegisterRequest{
		Email:    "taken@example.com",
		Username: "newuser",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", req.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).
		Return(&models.User{ID: "someone-else"}, nil).Once()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrRegistrationConflict)
	mockGateway.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegistrationService_Register_LocalConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockGateway := new(MockGateway)
	svc := newRegistrationService(mockRepo, mockGateway)

	req := &models.RegisterRequest{
		Email:    "test@example.com",
		Username: "duplicate",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", req.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", req.Email).Return(nil, repositories.ErrNotFound).Once()
	mockGateway.On("SignUp", mock.Anything, req.Email, req.Password).
		Return("remote-id-456", nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(errors.New("UNIQUE constraint failed: users.username")).Once()

	_, _, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrRegistrationConflict)
	assert.NotContains(t, err.Error(), "UNIQUE constraint",
		"store internals must not leak into the error")
	mockGateway.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}
