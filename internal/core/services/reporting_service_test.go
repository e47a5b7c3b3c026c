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
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountNetAmounts(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountAmount, error) {
	args := m.Called(ctx, from, to, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountAmount), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerLines(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockReportingRepository) GetOpeningBalance(ctx context.Context, accountID string, from time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, from)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetAgingLines(ctx context.Context, asOf time.Time, nameTokens []string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, asOf, nameTokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockReportingRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAccountRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_TotalsBalanceAndZeroRowsSkipped() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(100)},
		{AccountID: uuid.NewString(), AccountCode: "4000", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(300)},
		{AccountID: uuid.NewString(), AccountCode: "9999", Debit: decimal.Zero, Credit: decimal.Zero},
	}
	suite.mockRepo.On("GetTrialBalanceData", ctx, asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.Len(report.Rows, 2, "accounts with no activity should be omitted")
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
	suite.True(report.Rows[0].Balance.Equal(decimal.NewFromInt(200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_MissingAsOf() {
	ctx := context.Background()

	report, err := suite.service.TrialBalance(ctx, time.Time{})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, services.ErrMissingParameter)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_MissingFrom() {
	ctx := context.Background()

	report, err := suite.service.ProfitAndLoss(ctx, time.Time{}, time.Now())

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, services.ErrMissingParameter)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NetIncome() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	incomeID := uuid.NewString()
	expenseID := uuid.NewString()

	// Income accrues on the credit side, so its raw net is negative.
	amounts := []domain.AccountAmount{
		{AccountID: incomeID, AccountCode: "4000", Name: "Sales", NetAmount: decimal.NewFromInt(-500)},
		{AccountID: expenseID, AccountCode: "5000", Name: "Rent", NetAmount: decimal.NewFromInt(200)},
	}
	accounts := map[string]domain.Account{
		incomeID:  {AccountID: incomeID, AccountType: domain.Income},
		expenseID: {AccountID: expenseID, AccountType: domain.Expense},
	}

	suite.mockRepo.On("GetAccountNetAmounts", ctx, from, to, []domain.AccountType{domain.Income, domain.Expense}).Return(amounts, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(200)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(300)))
	suite.Len(report.Income, 1)
	suite.True(report.Income[0].NetAmount.Equal(decimal.NewFromInt(500)), "income should be reported positive")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SignConventions() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	assetID := uuid.NewString()
	liabilityID := uuid.NewString()

	amounts := []domain.AccountAmount{
		{AccountID: assetID, AccountCode: "1000", Name: "Bank", NetAmount: decimal.NewFromInt(800)},
		{AccountID: liabilityID, AccountCode: "2000", Name: "Loan", NetAmount: decimal.NewFromInt(-800)},
	}
	accounts := map[string]domain.Account{
		assetID:     {AccountID: assetID, AccountType: domain.Asset},
		liabilityID: {AccountID: liabilityID, AccountType: domain.Liability},
	}

	suite.mockRepo.On("GetAccountNetAmounts", ctx, time.Time{}, asOf, []domain.AccountType{domain.Asset, domain.Liability, domain.Equity}).Return(amounts, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(800)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(800)), "liabilities should be reported positive")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NetIsInflowMinusOutflow() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", Debit: decimal.NewFromInt(900), Credit: decimal.NewFromInt(400)},
	}
	suite.mockRepo.On("GetCashFlowData", ctx, from, to).Return(rows, nil).Once()

	report, err := suite.service.CashFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(report.Inflow.Equal(decimal.NewFromInt(900)))
	suite.True(report.Outflow.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetFlow.Equal(decimal.NewFromInt(500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestLedger_RunningBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	account := &domain.Account{AccountID: accountID, Code: "1000", Name: "Bank"}

	lines := []domain.LedgerLine{
		{Entry: domain.Entry{DebitAmount: decimal.NewFromInt(50)}},
		{Entry: domain.Entry{CreditAmount: decimal.NewFromInt(30)}},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("GetOpeningBalance", ctx, accountID, from).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockRepo.On("GetLedgerLines", ctx, accountID, &from, (*time.Time)(nil)).Return(lines, nil).Once()

	report, err := suite.service.Ledger(ctx, accountID, &from, nil)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(report.Lines, 2)
	suite.True(report.Lines[0].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.True(report.Lines[1].RunningBalance.Equal(decimal.NewFromInt(120)))
	suite.True(report.ClosingBalance.Equal(decimal.NewFromInt(120)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAging_Buckets() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	line := func(daysOld int, debit int64) domain.LedgerLine {
		return domain.LedgerLine{
			Entry:           domain.Entry{DebitAmount: decimal.NewFromInt(debit)},
			TransactionDate: asOf.AddDate(0, 0, -daysOld),
		}
	}
	lines := []domain.LedgerLine{
		line(0, 100),  // current
		line(10, 200), // 1-30
		line(45, 300), // 31-60
		line(90, 400), // 61-90, on the boundary
		line(91, 500), // over 90 starts right past the boundary
	}

	suite.mockRepo.On("GetAgingLines", ctx, asOf, mock.AnythingOfType("[]string")).Return(lines, nil).Once()

	report, err := suite.service.Aging(ctx, asOf, domain.AgingReceivable)

	suite.Require().NoError(err)
	suite.True(report.Buckets.Current.Equal(decimal.NewFromInt(100)))
	suite.True(report.Buckets.Days30.Equal(decimal.NewFromInt(200)))
	suite.True(report.Buckets.Days60.Equal(decimal.NewFromInt(300)))
	suite.True(report.Buckets.Days90.Equal(decimal.NewFromInt(400)))
	suite.True(report.Buckets.Over90.Equal(decimal.NewFromInt(500)))
	suite.True(report.Total.Equal(decimal.NewFromInt(1500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAging_InvalidKind() {
	ctx := context.Background()

	report, err := suite.service.Aging(ctx, time.Now(), domain.AgingKind("OVERDUE"))

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, services.ErrInvalidAgingKind)
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
