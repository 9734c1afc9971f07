package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// ProductRepositoryFacade defines persistence operations for inventory items.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductByIDForUpdate retrieves the product and locks its row until
	// the surrounding transaction ends. Must be called on a repository bound
	// to an open transaction; callers that read stock before writing it go
	// through this so concurrent movements serialize instead of overwriting
	// each other.
	FindProductByIDForUpdate(ctx context.Context, productID string) (*domain.Product, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)

	// UpdateProductStock sets the product's quantity and weighted-average
	// unit cost in one statement.
	UpdateProductStock(ctx context.Context, productID string, quantity, unitCost decimal.Decimal, updatedBy string, updatedAt time.Time) error
}
