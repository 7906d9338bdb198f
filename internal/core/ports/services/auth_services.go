package services

import (
	"context"

	"github.com/unionbooks/chapter_ledger/internal/core/domain"
	"github.com/unionbooks/chapter_ledger/internal/dto"
)

// AuthSvcFacade defines user registration and password login.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
}
