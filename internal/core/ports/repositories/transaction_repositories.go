package repositories

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

// TransactionRepository defines persistence operations for journal entries.
type TransactionRepository interface {
	// SaveTransaction persists a single journal entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists a batch of journal entries atomically.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// FindTransactionByID returns a journal entry or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// QueryTransactions executes a translated statement query. Results are
	// sorted by date descending, tie-broken by creation time descending
	// (canonical fetch order). Errors surface as a distinguishable failure,
	// never as an empty list.
	QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]domain.Transaction, error)

	// ListTransactions returns a page of journal entries newest first with
	// an opaque next-page token.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// DeleteTransaction removes a journal entry.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
