package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/core/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	mockChartSvc    *MockChartService
	txRunner        *stubTxRunner
	service         portssvc.LedgerSvcFacade

	userID         string
	cashAccount    domain.Account
	salesAccount   domain.Account
	expenseAccount domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockChartSvc = new(MockChartService)
	suite.txRunner = &stubTxRunner{set: portsrepo.RepositorySet{
		Account: suite.mockAccountRepo,
		Ledger:  suite.mockLedgerRepo,
	}}
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.txRunner, suite.mockChartSvc)

	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeCash,
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeSales,
		Name:        "Merchandise Sales",
		AccountType: domain.Income,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeUtilities,
		Name:        "Utilities",
		AccountType: domain.Expense,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest(amount int64) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Description: "cash sale",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(amount)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(amount)},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(100)

	accountsMap := map[string]domain.Account{
		domain.CodeCash:  suite.cashAccount,
		domain.CodeSales: suite.salesAccount,
	}
	suite.mockChartSvc.On("ResolveAccountCodes", ctx, []string{domain.CodeCash, domain.CodeSales}, suite.userID).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(req.Description, entry.Description)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.cashAccount.AccountID, entry.Lines[0].AccountID)
	suite.Equal(suite.salesAccount.AccountID, entry.Lines[1].AccountID)
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(1, suite.txRunner.calls)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockChartSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_DefaultsDateToNow() {
	ctx := context.Background()
	req := suite.balancedRequest(50)

	suite.mockChartSvc.On("ResolveAccountCodes", ctx, mock.Anything, suite.userID).Return(map[string]domain.Account{
		domain.CodeCash:  suite.cashAccount,
		domain.CodeSales: suite.salesAccount,
	}, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	before := time.Now().UTC()
	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)
	after := time.Now().UTC()

	suite.Require().NoError(err)
	suite.False(entry.EntryDate.Before(before))
	suite.False(entry.EntryDate.After(after))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "won't balance",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(90)},
		},
	}

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(entry)

	var unbalanced *services.UnbalancedEntryError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.Equal("100", unbalanced.TotalDebit.String())
	suite.Equal("90", unbalanced.TotalCredit.String())

	// Nothing may be persisted and no accounts resolved
	suite.Equal(0, suite.txRunner.calls)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
	suite.mockChartSvc.AssertNotCalled(suite.T(), "ResolveAccountCodes", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "bad line",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(0)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)
	suite.Require().Error(err)
	suite.Equal(0, suite.txRunner.calls)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_EmptyLine() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "zero line",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)
	suite.Require().Error(err)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NoLines() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{Description: "empty"}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNoLines)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "negative",
		Lines: []dto.EntryLineInput{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(-5)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(-5)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)
	suite.Require().Error(err)
	suite.Equal(0, suite.txRunner.calls)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "phantom account",
		Lines: []dto.EntryLineInput{
			{AccountCode: "999", Debit: decimal.NewFromInt(10)},
			{AccountCode: domain.CodeSales, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockChartSvc.On("ResolveAccountCodes", ctx, []string{"999", domain.CodeSales}, suite.userID).
		Return(nil, &services.UnknownAccountError{Code: "999"}).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	var unknown *services.UnknownAccountError
	suite.Require().True(errors.As(err, &unknown))
	suite.Equal("999", unknown.Code)
	suite.Equal(0, suite.txRunner.calls)
}

func (suite *LedgerServiceTestSuite) TestAccountBalance_AssetIsDebitNormal() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("AccountTotals", ctx, suite.cashAccount.AccountID).
		Return(decimal.NewFromInt(100), decimal.NewFromInt(30), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.cashAccount.AccountID)

	suite.Require().NoError(err)
	suite.Equal("70", balance.String())
}

func (suite *LedgerServiceTestSuite) TestAccountBalance_IncomeIsCreditNormal() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.salesAccount.AccountID).Return(&suite.salesAccount, nil).Once()
	suite.mockLedgerRepo.On("AccountTotals", ctx, suite.salesAccount.AccountID).
		Return(decimal.NewFromInt(10), decimal.NewFromInt(150), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.salesAccount.AccountID)

	suite.Require().NoError(err)
	suite.Equal("140", balance.String())
}

func (suite *LedgerServiceTestSuite) TestTrialBalance_IncludesInactiveAccounts() {
	ctx := context.Background()
	activity := []domain.AccountActivity{
		{AccountID: suite.cashAccount.AccountID, Code: domain.CodeCash, Name: "Cash", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(40)},
		{AccountID: suite.salesAccount.AccountID, Code: domain.CodeSales, Name: "Merchandise Sales", AccountType: domain.Income,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(60)},
		{AccountID: uuid.NewString(), Code: domain.CodeCapital, Name: "Capital", AccountType: domain.Equity,
			TotalDebit: decimal.Zero, TotalCredit: decimal.Zero},
	}
	suite.mockLedgerRepo.On("AllAccountsActivity", ctx).Return(activity, nil).Once()

	tb, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(tb.Rows, 3)
	suite.Equal("60", tb.Rows[0].Balance.String())
	suite.Equal("60", tb.Rows[1].Balance.String())
	suite.Equal("0", tb.Rows[2].Balance.String())
	suite.Equal("60", tb.Totals[domain.Asset].String())
	suite.Equal("60", tb.Totals[domain.Income].String())
	suite.Equal("0", tb.Totals[domain.Equity].String())
	suite.Equal("0", tb.Totals[domain.Liability].String())
}

func (suite *LedgerServiceTestSuite) TestIncomeStatement_FlipsExpenses() {
	ctx := context.Background()
	activity := []domain.AccountActivity{
		{AccountID: suite.salesAccount.AccountID, Code: domain.CodeSales, Name: "Merchandise Sales", AccountType: domain.Income,
			TotalDebit: decimal.NewFromInt(10), TotalCredit: decimal.NewFromInt(150)},
		{AccountID: suite.expenseAccount.AccountID, Code: domain.CodeUtilities, Name: "Utilities", AccountType: domain.Expense,
			TotalDebit: decimal.NewFromInt(45), TotalCredit: decimal.NewFromInt(5)},
	}
	suite.mockLedgerRepo.On("ActivityByType", ctx, []domain.AccountType{domain.Income, domain.Expense}, (*time.Time)(nil), (*time.Time)(nil)).
		Return(activity, nil).Once()

	statement, err := suite.service.IncomeStatement(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(statement.IncomeLines, 1)
	suite.Require().Len(statement.ExpenseLines, 1)
	suite.Equal("140", statement.IncomeLines[0].Amount.String())
	// Expense raw is credit-debit = -40, flipped to a positive magnitude
	suite.Equal("40", statement.ExpenseLines[0].Amount.String())
	suite.Equal("140", statement.TotalIncome.String())
	suite.Equal("40", statement.TotalExpense.String())
	suite.Equal("100", statement.NetResult.String())
}

func (suite *LedgerServiceTestSuite) TestIncomeStatement_Empty() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ActivityByType", ctx, mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.AccountActivity{}, nil).Once()

	statement, err := suite.service.IncomeStatement(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Empty(statement.IncomeLines)
	suite.Empty(statement.ExpenseLines)
	suite.Equal("0", statement.NetResult.String())
}

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ListEntries", ctx, 20, (*string)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntries_PassesToken() {
	ctx := context.Background()
	token := "b3BhcXVl"
	suite.mockLedgerRepo.On("ListEntries", ctx, 5, &token).
		Return([]domain.JournalEntry{{EntryID: uuid.NewString()}}, "next", nil).Once()

	page, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Limit: 5, NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(page.Entries, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal("next", *page.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
