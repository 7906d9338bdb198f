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

type PgxGroupRepository struct {
	pool *pgxpool.Pool
}

func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepository {
	return &PgxGroupRepository{pool: pool}
}

var _ portsrepo.GroupRepository = (*PgxGroupRepository)(nil)

// SaveGroup inserts a new group.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	query := `
		INSERT INTO groups (group_id, name, division_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		group.GroupID,
		group.Name,
		group.DivisionID,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: group %s already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("failed to save group %s: %w", group.GroupID, err)
	}
	return nil
}

// ListGroups returns every group ordered by name.
func (r *PgxGroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	query := `
		SELECT group_id, name, division_id, created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		err := rows.Scan(
			&g.GroupID,
			&g.Name,
			&g.DivisionID,
			&g.CreatedAt,
			&g.CreatedBy,
			&g.LastUpdatedAt,
			&g.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes a group.
func (r *PgxGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM groups WHERE group_id = $1;`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
