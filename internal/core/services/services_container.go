package services

import (
	portsrepo "github.com/unionbooks/chapter_ledger/internal/core/ports/repositories"
	portssvc "github.com/unionbooks/chapter_ledger/internal/core/ports/services"
	"github.com/unionbooks/chapter_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Statement: NewStatementService(repos, cfg.ChapterName, cfg.LogoURL),
		Ledger:    NewLedgerService(repos.TransactionRepo),
		Reference: NewReferenceService(repos),
		Auth:      NewAuthService(repos.UserRepo, cfg),
	}
}
