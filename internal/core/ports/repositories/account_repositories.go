package repositories

import (
	"context"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by id.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its unique name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListCategories retrieves all categories ordered by sort order.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// FindCategoryByID retrieves a category by id.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate on a
	// taken name.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
