package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// MockPostingRepository is a mock type for the PostingRepositoryFacade interface
type MockPostingRepository struct {
	mock.Mock
}

func (m *MockPostingRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockPostingRepository) ReplaceTransaction(ctx context.Context, txn *domain.Transaction, newChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, newChanges)
	return args.Error(0)
}

func (m *MockPostingRepository) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

func (m *MockPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockPostingRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

// MockAccountReaderService is a mock type for the AccountReaderSvc interface
type MockAccountReaderService struct {
	mock.Mock
}

func (m *MockAccountReaderService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReaderService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReaderService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockPostingRepository
	mockAccountSvc *MockAccountReaderService
	service        portssvc.PostingSvcFacade

	debitAccountID  string
	creditAccountID string
	accounts        map[string]domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPostingRepository)
	suite.mockAccountSvc = new(MockAccountReaderService)
	suite.service = services.NewPostingService(suite.mockRepo, suite.mockAccountSvc)

	suite.debitAccountID = uuid.NewString()
	suite.creditAccountID = uuid.NewString()
	suite.accounts = map[string]domain.Account{
		suite.debitAccountID:  {AccountID: suite.debitAccountID, Code: "1000", AccountType: domain.Asset, IsActive: true},
		suite.creditAccountID: {AccountID: suite.creditAccountID, Code: "4000", AccountType: domain.Income, IsActive: true},
	}
}

func (suite *PostingServiceTestSuite) balancedRequest(amount int64) dto.PostTransactionRequest {
	return dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "Cash sale",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.NewFromInt(amount)},
			{AccountID: suite.creditAccountID, CreditAmount: decimal.NewFromInt(amount)},
		},
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.balancedRequest(100)

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Once()

	var savedTxn *domain.Transaction
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedTxn = args.Get(1).(*domain.Transaction)
			savedTxn.TransactionNumber = "TXN000001"

			changes := args.Get(2).(map[string]decimal.Decimal)
			suite.True(changes[suite.debitAccountID].Equal(decimal.NewFromInt(100)))
			suite.True(changes[suite.creditAccountID].Equal(decimal.NewFromInt(-100)))
		}).Return(nil).Once()

	suite.mockRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{TransactionNumber: "TXN000001", Description: req.Description}, nil).Once()
	suite.mockRepo.On("FindEntriesByTransactionID", ctx, mock.AnythingOfType("string")).
		Return([]domain.Entry{}, nil).Once()

	posted, err := suite.service.PostTransaction(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal("TXN000001", posted.TransactionNumber)
	suite.Require().NotNil(savedTxn)
	suite.True(savedTxn.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal(creatorUserID, savedTxn.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "Off by ten",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.creditAccountID, CreditAmount: decimal.NewFromInt(90)},
		},
	}

	posted, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(posted)
	suite.ErrorIs(err, services.ErrUnbalancedEntries)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *PostingServiceTestSuite) TestPostTransaction_WithinTolerance() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "Rounding noise",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.RequireFromString("100.00")},
			{AccountID: suite.creditAccountID, CreditAmount: decimal.RequireFromString("99.995")},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).Return(&domain.Transaction{}, nil).Once()
	suite.mockRepo.On("FindEntriesByTransactionID", ctx, mock.AnythingOfType("string")).Return([]domain.Entry{}, nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_DualSidedEntries() {
	ctx := context.Background()
	// Each entry carries both a debit and a credit; only non-negativity and
	// the aggregate balance are constrained, so this must post cleanly.
	req := dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "Netted legs",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.NewFromInt(4)},
			{AccountID: suite.creditAccountID, DebitAmount: decimal.NewFromInt(4), CreditAmount: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			changes := args.Get(2).(map[string]decimal.Decimal)
			suite.True(changes[suite.debitAccountID].Equal(decimal.NewFromInt(6)))
			suite.True(changes[suite.creditAccountID].Equal(decimal.NewFromInt(-6)))
		}).Return(nil).Once()
	suite.mockRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).Return(&domain.Transaction{}, nil).Once()
	suite.mockRepo.On("FindEntriesByTransactionID", ctx, mock.AnythingOfType("string")).Return([]domain.Entry{}, nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_TooFewEntries() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "One leg only",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTooFewEntries)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *PostingServiceTestSuite) TestPostTransaction_NegativeAmount() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now().UTC(),
		Description: "Negative leg",
		Entries: []dto.EntryRequest{
			{AccountID: suite.debitAccountID, DebitAmount: decimal.NewFromInt(-100)},
			{AccountID: suite.creditAccountID, CreditAmount: decimal.NewFromInt(-100)},
		},
	}

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeAmount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *PostingServiceTestSuite) TestPostTransaction_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest(100)
	req.Description = ""

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMissingDescription)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	// Only the debit account resolves.
	partial := map[string]domain.Account{
		suite.debitAccountID: suite.accounts[suite.debitAccountID],
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(partial, nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *PostingServiceTestSuite) TestPostTransaction_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	inactive := suite.accounts[suite.creditAccountID]
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.debitAccountID:  suite.accounts[suite.debitAccountID],
		suite.creditAccountID: inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.PostTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *PostingServiceTestSuite) TestAmendTransaction_PreservesNumber() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	userID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID:     transactionID,
		TransactionNumber: "TXN000007",
		Description:       "Original",
		AuditFields:       domain.AuditFields{CreatedBy: uuid.NewString(), CreatedAt: time.Now().Add(-time.Hour)},
	}
	req := suite.balancedRequest(250)

	suite.mockRepo.On("FindTransactionByID", ctx, transactionID).Return(existing, nil)
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accounts, nil).Once()

	suite.mockRepo.On("ReplaceTransaction", ctx, mock.AnythingOfType("*domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			replaced := args.Get(1).(*domain.Transaction)
			suite.Equal("TXN000007", replaced.TransactionNumber)
			suite.Equal(existing.CreatedBy, replaced.CreatedBy)
			suite.Equal(userID, replaced.LastUpdatedBy)
		}).Return(nil).Once()
	suite.mockRepo.On("FindEntriesByTransactionID", ctx, transactionID).Return([]domain.Entry{}, nil).Once()

	amended, err := suite.service.AmendTransaction(ctx, transactionID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(amended)
	suite.Equal("TXN000007", amended.TransactionNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, transactionID).
		Return(&domain.Transaction{TransactionID: transactionID}, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, transactionID, userID).Return(nil).Once()

	err := suite.service.VoidTransaction(ctx, transactionID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestVoidTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.VoidTransaction(ctx, transactionID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction")
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
