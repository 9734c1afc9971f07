package services

import (
	"context"
	"fmt"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/utils/period"
)

// reportingService produces time-series views over the ledger, bucketed by
// a caller-supplied granularity.
type reportingService struct {
	chartSvc   portssvc.ChartSvcFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewReportingService creates the reporting service.
func NewReportingService(chartSvc portssvc.ChartSvcFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{chartSvc: chartSvc, ledgerRepo: ledgerRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func resolveGranularity(interval string) (period.Granularity, error) {
	if interval == "" {
		return period.Month, nil
	}
	granularity, err := period.Parse(interval)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	return granularity, nil
}

// SalesOverTime aggregates posted sales revenue into buckets of the given
// interval. An empty interval defaults to monthly buckets.
func (s *reportingService) SalesOverTime(ctx context.Context, interval string) (*dto.TimeSeriesResponse, error) {
	granularity, err := resolveGranularity(interval)
	if err != nil {
		return nil, err
	}

	salesAccount, err := s.chartSvc.GetAccountByCode(ctx, domain.CodeSales)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sales account: %w", err)
	}

	amounts, err := s.ledgerRepo.DatedAmountsByAccount(ctx, salesAccount.AccountID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales amounts: %w", err)
	}

	return &dto.TimeSeriesResponse{
		Interval: string(granularity),
		Points:   period.Aggregate(amounts, granularity),
	}, nil
}

// IncomeVsExpenseOverTime returns two aligned series, income and expense,
// both reported as positive magnitudes per bucket.
func (s *reportingService) IncomeVsExpenseOverTime(ctx context.Context, interval string) (*dto.IncomeVsExpenseResponse, error) {
	granularity, err := resolveGranularity(interval)
	if err != nil {
		return nil, err
	}

	incomeAmounts, err := s.ledgerRepo.DatedAmountsByType(ctx, domain.Income, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load income amounts: %w", err)
	}

	expenseAmounts, err := s.ledgerRepo.DatedAmountsByType(ctx, domain.Expense, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense amounts: %w", err)
	}
	// Expense lines net to credit-minus-debit like income; flip so the
	// series reads as positive spending.
	for i := range expenseAmounts {
		expenseAmounts[i].Amount = expenseAmounts[i].Amount.Neg()
	}

	return &dto.IncomeVsExpenseResponse{
		Interval: string(granularity),
		Income:   period.Aggregate(incomeAmounts, granularity),
		Expense:  period.Aggregate(expenseAmounts, granularity),
	}, nil
}
