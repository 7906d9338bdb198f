package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/dto"
	"github.com/unionbooks/chapter_ledger/internal/utils"
)

type referenceService struct {
	BaseService
	divisionRepo portsrepo.DivisionRepository
	categoryRepo portsrepo.CategoryRepository
	personRepo   portsrepo.PersonRepository
	groupRepo    portsrepo.GroupRepository
	now          func() time.Time
}

// ReferenceServiceOption configures optional reference service dependencies.
type ReferenceServiceOption func(*referenceService)

// WithReferenceClock overrides the time source.
func WithReferenceClock(now func() time.Time) ReferenceServiceOption {
	return func(s *referenceService) { s.now = now }
}

// NewReferenceService creates the reference data service.
func NewReferenceService(repos *portsrepo.RepositoryProvider, opts ...ReferenceServiceOption) portssvc.ReferenceSvcFacade {
	s := &referenceService{
		divisionRepo: repos.DivisionRepo,
		categoryRepo: repos.CategoryRepo,
		personRepo:   repos.PersonRepo,
		groupRepo:    repos.GroupRepo,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func (s *referenceService) audit(creatorUserID string) domain.AuditFields {
	now := s.now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
}

// pickSearch applies the picker's fuzzy search to an already loaded list.
// An empty query keeps the repository order.
func pickSearch[T any](items []T, search string, name func(T) string) []T {
	if search == "" {
		return items
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = name(item)
	}
	ranked := utils.FuzzyRank(search, names)
	out := make([]T, len(ranked))
	for i, idx := range ranked {
		out[i] = items[idx]
	}
	return out
}

func (s *referenceService) CreateDivision(ctx context.Context, req dto.CreateDivisionRequest, creatorUserID string) (*domain.Division, error) {
	division := domain.Division{
		DivisionID:  uuid.NewString(),
		Name:        req.Name,
		Area:        req.Area,
		AuditFields: s.audit(creatorUserID),
	}
	if err := s.divisionRepo.SaveDivision(ctx, division); err != nil {
		s.LogError(ctx, err, "Failed to save division", "name", req.Name)
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return &division, nil
}

func (s *referenceService) ListDivisions(ctx context.Context, search string) ([]domain.Division, error) {
	divisions, err := s.divisionRepo.ListDivisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	if divisions == nil {
		divisions = []domain.Division{}
	}
	return pickSearch(divisions, search, func(d domain.Division) string { return d.Name }), nil
}

func (s *referenceService) DeleteDivision(ctx context.Context, divisionID string) error {
	return s.divisionRepo.DeleteDivision(ctx, divisionID)
}

func (s *referenceService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Kind:        domain.TransactionKind(req.Kind),
		AuditFields: s.audit(creatorUserID),
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", "name", req.Name)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

func (s *referenceService) ListCategories(ctx context.Context, search string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return pickSearch(categories, search, func(c domain.Category) string { return c.Name }), nil
}

func (s *referenceService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}

func (s *referenceService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest, creatorUserID string) (*domain.Person, error) {
	person := domain.Person{
		PersonID:    uuid.NewString(),
		FullName:    req.FullName,
		DivisionID:  req.DivisionID,
		AuditFields: s.audit(creatorUserID),
	}
	if err := s.personRepo.SavePerson(ctx, person); err != nil {
		s.LogError(ctx, err, "Failed to save person", "full_name", req.FullName)
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	return &person, nil
}

func (s *referenceService) ListPersons(ctx context.Context, search string) ([]domain.Person, error) {
	persons, err := s.personRepo.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	if persons == nil {
		persons = []domain.Person{}
	}
	return pickSearch(persons, search, func(p domain.Person) string { return p.FullName }), nil
}

func (s *referenceService) DeletePerson(ctx context.Context, personID string) error {
	return s.personRepo.DeletePerson(ctx, personID)
}

func (s *referenceService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	group := domain.Group{
		GroupID:     uuid.NewString(),
		Name:        req.Name,
		DivisionID:  req.DivisionID,
		AuditFields: s.audit(creatorUserID),
	}
	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		s.LogError(ctx, err, "Failed to save group", "name", req.Name)
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

func (s *referenceService) ListGroups(ctx context.Context, search string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return pickSearch(groups, search, func(g domain.Group) string { return g.Name }), nil
}

func (s *referenceService) DeleteGroup(ctx context.Context, groupID string) error {
	return s.groupRepo.DeleteGroup(ctx, groupID)
}
