package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// MockAccountService is a mock type for the AccountSvcFacade interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// MockPostingService is a mock type for the PostingSvcFacade interface
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) AmendTransaction(ctx context.Context, transactionID string, req dto.AmendTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) VoidTransaction(ctx context.Context, transactionID string, userID string) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

func (m *MockPostingService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Test Suite Setup ---

type ImportServiceTestSuite struct {
	suite.Suite
	mockAccountSvc  *MockAccountService
	mockPostingSvc  *MockPostingService
	mockAccountRepo *MockAccountRepository
	service         portssvc.ImportSvcFacade
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPostingSvc = new(MockPostingService)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewImportService(suite.mockAccountSvc, suite.mockPostingSvc, suite.mockAccountRepo)
}

// --- Test Cases ---

func (suite *ImportServiceTestSuite) TestImportAccounts_SkipsInvalidRows() {
	ctx := context.Background()
	userID := uuid.NewString()
	csvData := strings.Join([]string{
		"code,name,type",
		"1000,Cash,ASSET",
		",Missing Code,ASSET",
		"4000,Sales,income",
	}, "\n")

	suite.mockAccountSvc.On("CreateAccount", ctx, mock.AnythingOfType("dto.CreateAccountRequest"), userID).
		Return(&domain.Account{AccountID: uuid.NewString()}, nil).Twice()

	result, err := suite.service.ImportAccounts(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.Equal(1, result.Skipped)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "line 3")
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportAccounts_MissingColumn() {
	ctx := context.Background()
	csvData := "code,name\n1000,Cash\n"

	result, err := suite.service.ImportAccounts(ctx, strings.NewReader(csvData), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *ImportServiceTestSuite) TestImportAccounts_ResolvesParentCode() {
	ctx := context.Background()
	userID := uuid.NewString()
	parentID := uuid.NewString()
	csvData := strings.Join([]string{
		"code,name,type,parent_code",
		"1100,Bank,ASSET,1000",
	}, "\n")

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").
		Return(&domain.Account{AccountID: parentID, Code: "1000"}, nil).Once()
	suite.mockAccountSvc.On("CreateAccount", ctx, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.ParentAccountID != nil && *req.ParentAccountID == parentID
	}), userID).Return(&domain.Account{AccountID: uuid.NewString()}, nil).Once()

	result, err := suite.service.ImportAccounts(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)
	suite.Equal(0, result.Skipped)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportTransactions_GroupsConsecutiveRows() {
	ctx := context.Background()
	userID := uuid.NewString()
	cashID := uuid.NewString()
	salesID := uuid.NewString()

	csvData := strings.Join([]string{
		"group,date,description,account_code,debit,credit",
		"g1,2024-03-01,Cash sale,1000,100,",
		"g1,2024-03-01,Cash sale,4000,,100",
		"g2,2024-03-02,Another sale,1000,50,",
		"g2,2024-03-02,Another sale,4000,,50",
	}, "\n")

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(&domain.Account{AccountID: cashID}, nil)
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "4000").Return(&domain.Account{AccountID: salesID}, nil)

	suite.mockPostingSvc.On("PostTransaction", ctx, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return len(req.Entries) == 2
	}), userID).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Twice()

	result, err := suite.service.ImportTransactions(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.Equal(0, result.Skipped)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportTransactions_UnknownAccountSkipsWholeGroup() {
	ctx := context.Background()
	userID := uuid.NewString()
	cashID := uuid.NewString()

	csvData := strings.Join([]string{
		"group,date,description,account_code,debit,credit",
		"g1,2024-03-01,Bad group,1000,100,",
		"g1,2024-03-01,Bad group,9999,,100",
	}, "\n")

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(&domain.Account{AccountID: cashID}, nil)
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "9999").Return(nil, apperrors.ErrNotFound)

	result, err := suite.service.ImportTransactions(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Imported)
	suite.Equal(1, result.Skipped)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], "group g1")
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *ImportServiceTestSuite) TestImportTransactions_PostingErrorCountsAsSkip() {
	ctx := context.Background()
	userID := uuid.NewString()
	cashID := uuid.NewString()

	csvData := strings.Join([]string{
		"group,date,description,account_code,debit,credit",
		"g1,2024-03-01,Unbalanced,1000,100,",
	}, "\n")

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(&domain.Account{AccountID: cashID}, nil)
	suite.mockPostingSvc.On("PostTransaction", ctx, mock.AnythingOfType("dto.PostTransactionRequest"), userID).
		Return(nil, services.ErrTooFewEntries).Once()

	result, err := suite.service.ImportTransactions(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Imported)
	suite.Equal(1, result.Skipped)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestImportService(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
