package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unionbooks/chapter_ledger/internal/apperrors"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
)

type PgxDivisionRepository struct {
	pool *pgxpool.Pool
}

func newPgxDivisionRepository(pool *pgxpool.Pool) portsrepo.DivisionRepository {
	return &PgxDivisionRepository{pool: pool}
}

var _ portsrepo.DivisionRepository = (*PgxDivisionRepository)(nil)

// SaveDivision inserts a new division.
func (r *PgxDivisionRepository) SaveDivision(ctx context.Context, division domain.Division) error {
	query := `
		INSERT INTO divisions (division_id, name, area, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		division.DivisionID,
		division.Name,
		division.Area,
		division.CreatedAt,
		division.CreatedBy,
		division.LastUpdatedAt,
		division.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: division %s already exists", apperrors.ErrDuplicate, division.Name)
		}
		return fmt.Errorf("failed to save division %s: %w", division.DivisionID, err)
	}
	return nil
}

// ListDivisions returns every division ordered by name.
func (r *PgxDivisionRepository) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	query := `
		SELECT division_id, name, area, created_at, created_by, last_updated_at, last_updated_by
		FROM divisions
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query divisions: %w", err)
	}
	defer rows.Close()

	divisions := []domain.Division{}
	for rows.Next() {
		var d domain.Division
		err := rows.Scan(
			&d.DivisionID,
			&d.Name,
			&d.Area,
			&d.CreatedAt,
			&d.CreatedBy,
			&d.LastUpdatedAt,
			&d.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan division row: %w", err)
		}
		divisions = append(divisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating division rows: %w", err)
	}
	return divisions, nil
}

// DeleteDivision removes a division.
func (r *PgxDivisionRepository) DeleteDivision(ctx context.Context, divisionID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM divisions WHERE division_id = $1;`, divisionID)
	if err != nil {
		return fmt.Errorf("failed to delete division %s: %w", divisionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
