package services

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

// AccountReaderSvc defines read operations for venue accounts and categories
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ResolveAccount retrieves an account by ID or, failing that, by name.
	ResolveAccount(ctx context.Context, nameOrID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListCategories retrieves all reporting categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// AccountWriterSvc defines write operations for venue accounts and categories
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// CreateCategory persists a new reporting category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
