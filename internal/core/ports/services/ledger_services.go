package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
)

// ChartSvcFacade is the account directory: it owns account creation and
// code resolution. No other component writes accounts.
type ChartSvcFacade interface {
	// EnsureChartOfAccounts idempotently seeds the minimal account set.
	EnsureChartOfAccounts(ctx context.Context, seederUserID string) error
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// ResolveAccountCodes maps codes to accounts, attempting one re-seed of
	// the chart before failing on a missing code.
	ResolveAccountCodes(ctx context.Context, codes []string, seederUserID string) (map[string]domain.Account, error)
}

// LedgerSvcFacade is the ledger engine. It exclusively owns entry and line
// creation.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	// CreateEntryIn runs the same validation and persistence against a
	// repository set already bound to an open transaction, so callers can
	// group several entries into one unit of work.
	CreateEntryIn(ctx context.Context, set portsrepo.RepositorySet, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	TrialBalance(ctx context.Context) (*dto.TrialBalanceResponse, error)
	IncomeStatement(ctx context.Context, from, to *time.Time) (*domain.IncomeStatement, error)
}

// InventorySvcFacade bridges inventory movements into the ledger.
type InventorySvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ReceiveStock(ctx context.Context, productID string, req dto.ReceiveStockRequest, userID string) (*domain.Product, error)
	RecordSale(ctx context.Context, req dto.RecordSaleRequest, authorUserID string) (*dto.SaleResponse, error)
	ReverseSale(ctx context.Context, req dto.ReverseSaleRequest, authorUserID string) (*dto.SaleResponse, error)
}

// ReportingSvcFacade builds period-bucketed report series.
type ReportingSvcFacade interface {
	SalesOverTime(ctx context.Context, interval string) (*dto.TimeSeriesResponse, error)
	IncomeVsExpenseOverTime(ctx context.Context, interval string) (*dto.IncomeVsExpenseResponse, error)
}

// ServiceContainer groups every service facade for dependency injection into
// the handler layer.
type ServiceContainer struct {
	Chart     ChartSvcFacade
	Ledger    LedgerSvcFacade
	Inventory InventorySvcFacade
	Reporting ReportingSvcFacade
}
