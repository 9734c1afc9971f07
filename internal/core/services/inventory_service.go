package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/apperrors"
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_backend/internal/dto"
	"github.com/shopledger/shop_ledger_backend/internal/middleware"
	"github.com/shopledger/shop_ledger_backend/internal/utils/accounting"
)

// inventoryService bridges inventory movements into the ledger. A sale
// posts a revenue entry (cash against sales) and, when the product carries
// cost, a matching cost-of-goods entry (purchases against inventory); a
// reversal posts the same entries with debit and credit swapped. Both
// entries and the stock mutation share one database transaction.
type inventoryService struct {
	productRepo portsrepo.ProductRepositoryFacade
	ledgerSvc   portssvc.LedgerSvcFacade
	tx          portsrepo.TxRunner
}

// NewInventoryService creates the inventory-to-ledger bridge.
func NewInventoryService(productRepo portsrepo.ProductRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, tx portsrepo.TxRunner) portssvc.InventorySvcFacade {
	return &inventoryService{
		productRepo: productRepo,
		ledgerSvc:   ledgerSvc,
		tx:          tx,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateProduct registers an inventory item.
func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.UnitPrice.IsNegative() || req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit price and unit cost must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      req.Name,
		SKU:       req.SKU,
		Quantity:  decimal.Zero,
		UnitPrice: req.UnitPrice,
		UnitCost:  req.UnitCost,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

// GetProductByID retrieves one product.
func (s *inventoryService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts returns the product catalog.
func (s *inventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ReceiveStock records an inbound movement: quantity is added and the unit
// cost becomes the weighted average of existing and incoming stock.
func (s *inventoryService) ReceiveStock(ctx context.Context, productID string, req dto.ReceiveStockRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: receive quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit cost must not be negative", apperrors.ErrValidation)
	}

	// Lock the row so the weighted average blends against the quantity the
	// update will actually land on, not a stale pool read.
	var product *domain.Product
	err := s.tx.WithTransaction(ctx, func(set portsrepo.RepositorySet) error {
		p, err := set.Product.FindProductByIDForUpdate(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to find product %s: %w", productID, err)
		}

		newCost, err := accounting.WeightedAverageCost(p.Quantity, p.UnitCost, req.Quantity, req.UnitCost)
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		newQuantity := p.Quantity.Add(req.Quantity)

		now := time.Now().UTC()
		if err := set.Product.UpdateProductStock(ctx, productID, newQuantity, newCost, userID, now); err != nil {
			return fmt.Errorf("failed to update product stock: %w", err)
		}

		p.Quantity = newQuantity
		p.UnitCost = newCost
		p.LastUpdatedAt = now
		p.LastUpdatedBy = userID
		product = p
		return nil
	})
	if err != nil {
		logger.Error("Failed to receive stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}

	logger.Info("Stock received",
		slog.String("product_id", productID),
		slog.String("quantity", product.Quantity.String()),
		slog.String("unit_cost", product.UnitCost.String()))
	return product, nil
}

// RecordSale posts a sale for a product: stock out, a revenue entry, and a
// cost entry when the cost total is positive. Everything runs in one
// transaction so the pair cannot be half-committed. The product row is read
// under a lock inside that transaction, so the stock check and the decrement
// see the same quantity even under concurrent sales or receipts.
func (s *inventoryService) RecordSale(ctx context.Context, req dto.RecordSaleRequest, authorUserID string) (*dto.SaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	reference := req.Reference
	resp := &dto.SaleResponse{Reference: reference}

	err := s.tx.WithTransaction(ctx, func(set portsrepo.RepositorySet) error {
		product, err := set.Product.FindProductByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
		}
		if product.Quantity.LessThan(req.Quantity) {
			return fmt.Errorf("%w: %s has %s on hand", ErrInsufficientStock, product.Name, product.Quantity.String())
		}

		total := req.Quantity.Mul(product.UnitPrice)
		costTotal := req.Quantity.Mul(product.UnitCost)
		resp.Total = total
		resp.CostTotal = costTotal

		now := time.Now().UTC()
		if err := set.Product.UpdateProductStock(ctx, product.ProductID, product.Quantity.Sub(req.Quantity), product.UnitCost, authorUserID, now); err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		revenue, err := s.ledgerSvc.CreateEntryIn(ctx, set, dto.CreateEntryRequest{
			Description: fmt.Sprintf("Sale of %s (x%s)", product.Name, req.Quantity.String()),
			Reference:   &reference,
			Lines: []dto.EntryLineInput{
				{AccountCode: domain.CodeCash, Debit: total},
				{AccountCode: domain.CodeSales, Credit: total},
			},
		}, authorUserID)
		if err != nil {
			return err
		}
		resp.RevenueEntryID = revenue.EntryID

		if costTotal.IsPositive() {
			cost, err := s.ledgerSvc.CreateEntryIn(ctx, set, dto.CreateEntryRequest{
				Description: fmt.Sprintf("Cost of sale %s", product.Name),
				Reference:   &reference,
				Lines: []dto.EntryLineInput{
					{AccountCode: domain.CodePurchases, Debit: costTotal},
					{AccountCode: domain.CodeInventory, Credit: costTotal},
				},
			}, authorUserID)
			if err != nil {
				return err
			}
			resp.CostEntryID = &cost.EntryID
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record sale", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, err
	}

	logger.Info("Sale recorded",
		slog.String("reference", reference),
		slog.String("total", resp.Total.String()),
		slog.String("cost_total", resp.CostTotal.String()))
	return resp, nil
}

// ReverseSale cancels a prior sale: stock is restored and new entries are
// posted with every debit and credit swapped. The original entries stay in
// the ledger, preserving the audit history.
func (s *inventoryService) ReverseSale(ctx context.Context, req dto.ReverseSaleRequest, authorUserID string) (*dto.SaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	reference := req.Reference
	resp := &dto.SaleResponse{Reference: reference}

	err := s.tx.WithTransaction(ctx, func(set portsrepo.RepositorySet) error {
		product, err := set.Product.FindProductByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
		}

		total := req.Quantity.Mul(product.UnitPrice)
		costTotal := req.Quantity.Mul(product.UnitCost)
		resp.Total = total
		resp.CostTotal = costTotal

		now := time.Now().UTC()
		if err := set.Product.UpdateProductStock(ctx, product.ProductID, product.Quantity.Add(req.Quantity), product.UnitCost, authorUserID, now); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}

		revenue, err := s.ledgerSvc.CreateEntryIn(ctx, set, dto.CreateEntryRequest{
			Description: fmt.Sprintf("Sale cancellation %s", product.Name),
			Reference:   &reference,
			Lines: []dto.EntryLineInput{
				{AccountCode: domain.CodeSales, Debit: total},
				{AccountCode: domain.CodeCash, Credit: total},
			},
		}, authorUserID)
		if err != nil {
			return err
		}
		resp.RevenueEntryID = revenue.EntryID

		if costTotal.IsPositive() {
			cost, err := s.ledgerSvc.CreateEntryIn(ctx, set, dto.CreateEntryRequest{
				Description: fmt.Sprintf("Cost reversal %s", product.Name),
				Reference:   &reference,
				Lines: []dto.EntryLineInput{
					{AccountCode: domain.CodeInventory, Debit: costTotal},
					{AccountCode: domain.CodePurchases, Credit: costTotal},
				},
			}, authorUserID)
			if err != nil {
				return err
			}
			resp.CostEntryID = &cost.EntryID
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to reverse sale", slog.String("error", err.Error()), slog.String("reference", reference))
		return nil, err
	}

	logger.Info("Sale reversed", slog.String("reference", reference), slog.String("total", resp.Total.String()))
	return resp, nil
}
