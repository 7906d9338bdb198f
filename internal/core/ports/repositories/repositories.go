package repositories

// RepositoryProvider bundles every repository implementation the service
// container needs.
type RepositoryProvider struct {
	TransactionRepo TransactionRepository
	DivisionRepo    DivisionRepository
	CategoryRepo    CategoryRepository
	PersonRepo      PersonRepository
	GroupRepo       GroupRepository
	UserRepo        UserRepository
}
