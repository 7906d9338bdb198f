package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
)

type ledgerService struct {
	BaseService
	txnRepo portsrepo.TransactionRepository
	now     func() time.Time
}

// LedgerServiceOption configures optional ledger service dependencies.
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the time source.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) { s.now = now }
}

// NewLedgerService creates the journal entry service.
func NewLedgerService(txnRepo portsrepo.TransactionRepository, opts ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	s := &ledgerService{txnRepo: txnRepo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// fromCreateRequest validates and converts one request row into a domain
// transaction ready to persist.
func (s *ledgerService) fromCreateRequest(req dto.CreateTransactionRequest, creatorUserID string, now time.Time) (domain.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	kind := domain.TransactionKind(req.Kind)
	if !kind.IsValid() {
		return domain.Transaction{}, fmt.Errorf("%w: invalid kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}
	if req.PersonID != nil && req.GroupID != nil {
		return domain.Transaction{}, fmt.Errorf("%w: a transaction is tagged to a person or a group, not both", apperrors.ErrValidation)
	}

	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          date,
		Kind:          kind,
		Amount:        req.Amount,
		Notes:         req.Notes,
		DivisionID:    req.DivisionID,
		CategoryID:    req.CategoryID,
		PersonID:      req.PersonID,
		GroupID:       req.GroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}, nil
}

// CreateTransaction records a single journal entry.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	txn, err := s.fromCreateRequest(req, creatorUserID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", "transaction_id", txn.TransactionID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &txn, nil
}

// CreateTransactions persists a bulk row entry atomically: either every row
// lands or none do.
func (s *ledgerService) CreateTransactions(ctx context.Context, req dto.BulkCreateTransactionsRequest, creatorUserID string) ([]domain.Transaction, error) {
	now := s.now()
	txns := make([]domain.Transaction, 0, len(req.Entries))
	for i, entry := range req.Entries {
		txn, err := s.fromCreateRequest(entry, creatorUserID, now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		txns = append(txns, txn)
	}

	if err := s.txnRepo.SaveTransactions(ctx, txns); err != nil {
		s.LogError(ctx, err, "Failed to save transaction batch", "count", len(txns))
		return nil, fmt.Errorf("failed to create transactions: %w", err)
	}
	return txns, nil
}

// GetTransactionByID returns a single journal entry.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns a page of journal entries newest first.
func (s *ledgerService) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	txns, newToken, err := s.txnRepo.ListTransactions(ctx, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, newToken, nil
}

// DeleteTransaction removes a journal entry.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", "transaction_id", transactionID)
	return nil
}
