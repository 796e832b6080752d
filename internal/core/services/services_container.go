package services

import (
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finova_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, options...),
		Fiscal:  NewFiscalService(repos.FiscalRepo, options...),
		Journal: NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.FiscalRepo, options...),
	}
}
