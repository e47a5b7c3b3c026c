package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider, providerID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Pat",
		Email:    "pat@example.com",
		Password: "correct horse battery",
	}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("local", user.AuthProvider)
	suite.True(user.IsActive)
	suite.NotEqual(req.Password, saved.PasswordHash, "password must never be stored in clear")
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	suite.Equal(user.UserID, user.CreatedBy, "users are their own creator")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "pat@example.com"}

	suite.mockRepo.On("FindUserByEmail", ctx, "pat@example.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Pat",
		Email:    "pat@example.com",
		Password: "irrelevant-password",
	})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrDuplicateEmail)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "pat@example.com", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByEmail", ctx, "pat@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "pat@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailIndistinguishable() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "any-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "pat@example.com", PasswordHash: hash, IsActive: false}
	suite.mockRepo.On("FindUserByEmail", ctx, "pat@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "pat@example.com", "right-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_AdoptsLocalAccountByEmail() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{Subject: "google-sub-1", Email: "pat@example.com", Name: "Pat"}
	local := &domain.User{UserID: uuid.NewString(), Email: "pat@example.com", AuthProvider: "local", IsActive: true}

	suite.mockRepo.On("FindUserByProviderID", ctx, "google", "google-sub-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "pat@example.com").Return(local, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(local.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesOnFirstSignIn() {
	ctx := context.Background()
	info := domain.GoogleUserInfo{Subject: "google-sub-2", Email: "new@example.com", Name: "New User"}

	suite.mockRepo.On("FindUserByProviderID", ctx, "google", "google-sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal("google", user.AuthProvider)
	suite.Equal("google-sub-2", user.ProviderID)
	suite.Empty(user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
