package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(pool),
		DivisionRepo:    newPgxDivisionRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		PersonRepo:      newPgxPersonRepository(pool),
		GroupRepo:       newPgxGroupRepository(pool),
		UserRepo:        newPgxUserRepository(pool),
	}
}
