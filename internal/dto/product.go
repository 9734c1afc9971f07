package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// CreateProductRequest creates an inventory item. UnitCost may be zero for
// items whose cost is established by the first stock receipt.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// ReceiveStockRequest records an inbound stock movement; the product's
// weighted-average cost is recalculated from it.
type ReceiveStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost decimal.Decimal `json:"unitCost" binding:"required"`
}

// ProductResponse is one inventory item.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// ToProductResponse converts a domain Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		SKU:       p.SKU,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		UnitCost:  p.UnitCost,
	}
}
