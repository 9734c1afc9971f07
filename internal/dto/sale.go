package dto

import "github.com/shopspring/decimal"

// RecordSaleRequest posts a sale: stock out, revenue entry, and (when unit
// cost is nonzero) a matching cost-of-goods entry, all in one transaction.
type RecordSaleRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reference string          `json:"reference" binding:"required"`
}

// ReverseSaleRequest cancels a prior sale with the same arguments. New
// entries are posted with debit/credit swapped; nothing is deleted.
// Reference comes from the URL path, not the body.
type ReverseSaleRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reference string          `json:"-"`
}

// SaleResponse reports the entries a sale or reversal produced. CostEntryID
// is nil when the product carried zero unit cost.
type SaleResponse struct {
	Reference      string          `json:"reference"`
	RevenueEntryID string          `json:"revenueEntryID"`
	CostEntryID    *string         `json:"costEntryID,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CostTotal      decimal.Decimal `json:"costTotal"`
}
