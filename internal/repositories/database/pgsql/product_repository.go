package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	"github.com/shopledger/shop_ledger_backend/internal/models"
	"github.com/shopledger/shop_ledger_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	db Querier
}

// newPgxProductRepository creates a new repository for inventory items.
func newPgxProductRepository(db Querier) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{db: db}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, sku, quantity, unit_price, unit_cost, created_at, created_by, last_updated_at, last_updated_by`

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (product_id, name, sku, quantity, unit_price, unit_cost, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		modelProduct.ProductID,
		modelProduct.Name,
		modelProduct.SKU,
		modelProduct.Quantity,
		modelProduct.UnitPrice,
		modelProduct.UnitCost,
		modelProduct.CreatedAt,
		modelProduct.CreatedBy,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, modelProduct.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", modelProduct.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves one product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	return r.findProduct(ctx, query, productID)
}

// FindProductByIDForUpdate retrieves one product and locks its row for the
// rest of the transaction. Must be called within a transaction.
func (r *PgxProductRepository) FindProductByIDForUpdate(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE;`
	return r.findProduct(ctx, query, productID)
}

func (r *PgxProductRepository) findProduct(ctx context.Context, query, productID string) (*domain.Product, error) {
	var m models.Product
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Quantity,
		&m.UnitPrice,
		&m.UnitCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// ListProducts returns the full product catalog ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}

	products := make([]domain.Product, len(modelProducts))
	for i, m := range modelProducts {
		products[i] = mapping.ToDomainProduct(m)
	}
	return products, nil
}

// UpdateProductStock sets the quantity and weighted-average unit cost.
func (r *PgxProductRepository) UpdateProductStock(ctx context.Context, productID string, quantity, unitCost decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE products
		SET quantity = $2, unit_cost = $3, last_updated_by = $4, last_updated_at = $5
		WHERE product_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, productID, quantity, unitCost, updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update stock for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, productID)
	}
	return nil
}
