package services

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/dto"
)

// LedgerSvcFacade defines journal entry operations.
type LedgerSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// CreateTransactions persists a bulk row entry atomically.
	CreateTransactions(ctx context.Context, req dto.BulkCreateTransactionsRequest, creatorUserID string) ([]domain.Transaction, error)

	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a page of entries newest first plus an
	// opaque token for the next page.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	DeleteTransaction(ctx context.Context, transactionID string) error
}
