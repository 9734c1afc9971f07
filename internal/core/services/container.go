package services

import (
	portsrepo "github.com/shopledger/shop_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/shopledger/shop_ledger_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services over one repository provider.
func NewServiceContainer(provider portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	repos := provider.Repositories()

	chartSvc := NewChartService(repos.Account)
	ledgerSvc := NewLedgerService(repos.Ledger, repos.Account, provider, chartSvc)
	inventorySvc := NewInventoryService(repos.Product, ledgerSvc, provider)
	reportingSvc := NewReportingService(chartSvc, repos.Ledger)

	return &portssvc.ServiceContainer{
		Chart:     chartSvc,
		Ledger:    ledgerSvc,
		Inventory: inventorySvc,
		Reporting: reportingSvc,
	}
}
