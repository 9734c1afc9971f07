package domain

import "github.com/shopspring/decimal"

// Product is an inventory item with its current stock level and
// weighted-average unit cost. UnitCost is recalculated on every stock
// receipt; sales consume stock at the current cost.
type Product struct {
	ProductID string          `json:"productID"` // Primary key (UUID)
	Name      string          `json:"name"`
	SKU       string          `json:"sku"` // Optional supplier reference
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"` // Weighted-average cost
	AuditFields
}
