package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	"github.com/unionbooks/chapter_ledger/internal/utils/pagination"
)

const transactionColumns = `transaction_id, txn_date, kind, amount, notes, division_id, category_id, person_id, group_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for journal entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Date,
		&txn.Kind,
		&txn.Amount,
		&txn.Notes,
		&txn.DivisionID,
		&txn.CategoryID,
		&txn.PersonID,
		&txn.GroupID,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

// SaveTransaction inserts a new journal entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Date,
		txn.Kind,
		txn.Amount,
		txn.Notes,
		txn.DivisionID,
		txn.CategoryID,
		txn.PersonID,
		txn.GroupID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveTransactions inserts a batch of journal entries atomically.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin bulk transaction insert: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(query,
			txn.TransactionID,
			txn.Date,
			txn.Kind,
			txn.Amount,
			txn.Notes,
			txn.DivisionID,
			txn.CategoryID,
			txn.PersonID,
			txn.GroupID,
			txn.CreatedAt,
			txn.CreatedBy,
			txn.LastUpdatedAt,
			txn.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				batchErr = fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txns[i].TransactionID)
			} else {
				batchErr = fmt.Errorf("failed to save transaction %s in batch: %w", txns[i].TransactionID, err)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close bulk insert batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk transaction insert: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a journal entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &txn, nil
}

// QueryTransactions executes a translated statement query. The WHERE clause
// is assembled dimension by dimension; a dimension with no values imposes no
// restriction. Results come back in canonical fetch order.
func (r *PgxTransactionRepository) QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]domain.Transaction, error) {
	conditions := []string{"txn_date >= $1", "txn_date <= $2"}
	args := []any{q.DateFrom, q.DateTo}

	if q.Kind != nil {
		args = append(args, *q.Kind)
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if len(q.DivisionIDs) > 0 {
		args = append(args, q.DivisionIDs)
		conditions = append(conditions, fmt.Sprintf("division_id = ANY($%d)", len(args)))
	}
	if len(q.CategoryIDs) > 0 {
		args = append(args, q.CategoryIDs)
		conditions = append(conditions, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}

	// Person and group selections combine with OR: tagged to either matches.
	switch {
	case len(q.PersonIDs) > 0 && len(q.GroupIDs) > 0:
		args = append(args, q.PersonIDs)
		personPos := len(args)
		args = append(args, q.GroupIDs)
		conditions = append(conditions, fmt.Sprintf("(person_id = ANY($%d) OR group_id = ANY($%d))", personPos, len(args)))
	case len(q.PersonIDs) > 0:
		args = append(args, q.PersonIDs)
		conditions = append(conditions, fmt.Sprintf("person_id = ANY($%d)", len(args)))
	case len(q.GroupIDs) > 0:
		args = append(args, q.GroupIDs)
		conditions = append(conditions, fmt.Sprintf("group_id = ANY($%d)", len(args)))
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY txn_date DESC, created_at DESC;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ListTransactions returns a page of journal entries newest first. The
// opaque token encodes the (date, created_at) position of the last entry on
// the previous page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []any{limit + 1}
	where := ""
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, txnDate, createdAt)
		where = "WHERE (txn_date, created_at) < ($2, $3)"
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		` + where + `
		ORDER BY txn_date DESC, created_at DESC
		LIMIT $1;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row during list: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows during list: %w", err)
	}

	var newToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newToken = &token
	}
	return txns, newToken, nil
}

// DeleteTransaction removes a journal entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
