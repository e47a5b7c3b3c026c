package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasEntries(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.Asset,
		IsCash:      true,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.Code, created.Code)
	suite.Equal(req.AccountType, created.AccountType)
	suite.True(created.IsCash)
	suite.True(created.IsActive)
	suite.True(created.Balance.IsZero())
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1000"}
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.AccountType("BOGUS"),
	}

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrInvalidAccountType)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ParentCycle() {
	ctx := context.Background()
	accountID := uuid.NewString()
	childID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, Code: "1000", Name: "Assets", AccountType: domain.Asset, IsActive: true}
	child := &domain.Account{AccountID: childID, Code: "1100", Name: "Bank", AccountType: domain.Asset, ParentAccountID: accountID, IsActive: true}

	// Reparenting an account under its own descendant must be rejected.
	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil)
	suite.mockRepo.On("FindAccountByID", ctx, childID).Return(child, nil)

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{ParentAccountID: &childID}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrParentCycle)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", Name: "Assets", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{ParentAccountID: &accountID}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrParentCycle)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_BlockedByEntries() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasEntries", ctx, accountID).Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrHasEntries)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	userID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1000", IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("HasEntries", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_ResolvesParentName() {
	ctx := context.Background()
	parentID := uuid.NewString()
	accountID := uuid.NewString()
	parent := &domain.Account{AccountID: parentID, Code: "1000", Name: "Assets"}
	account := &domain.Account{AccountID: accountID, Code: "1100", Name: "Bank", ParentAccountID: parentID}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal("Assets", got.ParentName)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
