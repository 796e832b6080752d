package pgsql

import (
	portsrepo "github.com/SscSPs/finova_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		FiscalRepo:  newPgxFiscalRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
	}
}
