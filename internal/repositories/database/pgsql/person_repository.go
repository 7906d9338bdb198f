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

type PgxPersonRepository struct {
	pool *pgxpool.Pool
}

func newPgxPersonRepository(pool *pgxpool.Pool) portsrepo.PersonRepository {
	return &PgxPersonRepository{pool: pool}
}

var _ portsrepo.PersonRepository = (*PgxPersonRepository)(nil)

// SavePerson inserts a new person.
func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	query := `
		INSERT INTO persons (person_id, full_name, division_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		person.PersonID,
		person.FullName,
		person.DivisionID,
		person.CreatedAt,
		person.CreatedBy,
		person.LastUpdatedAt,
		person.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: person %s already exists", apperrors.ErrDuplicate, person.FullName)
		}
		return fmt.Errorf("failed to save person %s: %w", person.PersonID, err)
	}
	return nil
}

// ListPersons returns every person ordered by full name.
func (r *PgxPersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	query := `
		SELECT person_id, full_name, division_id, created_at, created_by, last_updated_at, last_updated_by
		FROM persons
		ORDER BY full_name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	persons := []domain.Person{}
	for rows.Next() {
		var p domain.Person
		err := rows.Scan(
			&p.PersonID,
			&p.FullName,
			&p.DivisionID,
			&p.CreatedAt,
			&p.CreatedBy,
			&p.LastUpdatedAt,
			&p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person row: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating person rows: %w", err)
	}
	return persons, nil
}

// DeletePerson removes a person.
func (r *PgxPersonRepository) DeletePerson(ctx context.Context, personID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM persons WHERE person_id = $1;`, personID)
	if err != nil {
		return fmt.Errorf("failed to delete person %s: %w", personID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
