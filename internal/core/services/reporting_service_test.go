package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockChartSvc   *MockChartService
	service        portssvc.ReportingSvcFacade

	salesAccount domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockChartSvc = new(MockChartService)
	suite.service = services.NewReportingService(suite.mockChartSvc, suite.mockLedgerRepo)

	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeSales,
		Name:        "Merchandise Sales",
		AccountType: domain.Income,
	}
}

func (suite *ReportingServiceTestSuite) TestSalesOverTime_DefaultsToMonth() {
	ctx := context.Background()
	suite.mockChartSvc.On("GetAccountByCode", ctx, domain.CodeSales).Return(&suite.salesAccount, nil).Once()
	suite.mockLedgerRepo.On("DatedAmountsByAccount", ctx, suite.salesAccount.AccountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.DatedAmount{
			{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100)},
			{Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(50)},
			{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(70)},
		}, nil).Once()

	series, err := suite.service.SalesOverTime(ctx, "")

	suite.Require().NoError(err)
	suite.Equal("month", series.Interval)
	suite.Require().Len(series.Points, 2)
	suite.Equal("2024-03", series.Points[0].Label)
	suite.Equal("150", series.Points[0].Value.String())
	suite.Equal("2024-04", series.Points[1].Label)
	suite.Equal("70", series.Points[1].Value.String())
}

func (suite *ReportingServiceTestSuite) TestSalesOverTime_QuarterBuckets() {
	ctx := context.Background()
	suite.mockChartSvc.On("GetAccountByCode", ctx, domain.CodeSales).Return(&suite.salesAccount, nil).Once()
	suite.mockLedgerRepo.On("DatedAmountsByAccount", ctx, suite.salesAccount.AccountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.DatedAmount{
			{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10)},
			{Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(5)},
		}, nil).Once()

	series, err := suite.service.SalesOverTime(ctx, "quarter")

	suite.Require().NoError(err)
	suite.Require().Len(series.Points, 2)
	suite.Equal("2023-T4", series.Points[0].Label)
	suite.Equal("2024-T1", series.Points[1].Label)
}

func (suite *ReportingServiceTestSuite) TestSalesOverTime_RejectsUnknownInterval() {
	ctx := context.Background()

	_, err := suite.service.SalesOverTime(ctx, "fortnight")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "DatedAmountsByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestIncomeVsExpense_FlipsExpenseSign() {
	ctx := context.Background()
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockLedgerRepo.On("DatedAmountsByType", ctx, domain.Income, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.DatedAmount{{Date: march, Amount: decimal.NewFromInt(200)}}, nil).Once()
	// Expense lines net to a negative credit-minus-debit
	suite.mockLedgerRepo.On("DatedAmountsByType", ctx, domain.Expense, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.DatedAmount{{Date: march, Amount: decimal.NewFromInt(-80)}}, nil).Once()

	report, err := suite.service.IncomeVsExpenseOverTime(ctx, "month")

	suite.Require().NoError(err)
	suite.Require().Len(report.Income, 1)
	suite.Require().Len(report.Expense, 1)
	suite.Equal("200", report.Income[0].Value.String())
	suite.Equal("80", report.Expense[0].Value.String(), "expense buckets must surface as positive spending")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
