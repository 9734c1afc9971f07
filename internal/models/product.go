package models

import "github.com/shopspring/decimal"

// Product is the db row for one inventory item.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	SKU       string          `db:"sku"`
	Quantity  decimal.Decimal `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	UnitCost  decimal.Decimal `db:"unit_cost"`
	AuditFields
}
