package mapping

import (
	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
	"github.com/shopledger/shop_ledger_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		SKU:         d.SKU,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		UnitCost:    d.UnitCost,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		SKU:         m.SKU,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		UnitCost:    m.UnitCost,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
