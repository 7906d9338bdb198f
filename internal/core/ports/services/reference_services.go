package services

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/dto"
)

// ReferenceSvcFacade defines CRUD over the four small reference entities
// that transactions are tagged with. Every List operation accepts an
// optional picker search term; matching is fuzzy so the dashboard's
// search-and-apply multi-selects tolerate typos.
type ReferenceSvcFacade interface {
	CreateDivision(ctx context.Context, req dto.CreateDivisionRequest, creatorUserID string) (*domain.Division, error)
	ListDivisions(ctx context.Context, search string) ([]domain.Division, error)
	DeleteDivision(ctx context.Context, divisionID string) error

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	ListCategories(ctx context.Context, search string) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error

	CreatePerson(ctx context.Context, req dto.CreatePersonRequest, creatorUserID string) (*domain.Person, error)
	ListPersons(ctx context.Context, search string) ([]domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error

	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)
	ListGroups(ctx context.Context, search string) ([]domain.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
}
