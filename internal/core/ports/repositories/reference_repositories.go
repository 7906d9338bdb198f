package repositories

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
)

// DivisionRepository defines persistence operations for divisions.
type DivisionRepository interface {
	SaveDivision(ctx context.Context, division domain.Division) error
	ListDivisions(ctx context.Context) ([]domain.Division, error)
	DeleteDivision(ctx context.Context, divisionID string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// PersonRepository defines persistence operations for persons.
type PersonRepository interface {
	SavePerson(ctx context.Context, person domain.Person) error
	ListPersons(ctx context.Context) ([]domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error
}

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	SaveGroup(ctx context.Context, group domain.Group) error
	ListGroups(ctx context.Context) ([]domain.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
}
