package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

// accountService manages venue accounts and their reporting categories.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType, ok := domain.ParseAccountType(req.AccountType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.CategoryID != "" {
		if _, err := s.accountRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", req.CategoryID, err)
		}
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		AccountType: accountType,
		CategoryID:  req.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account name %q: %w", req.Name, apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save account", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		SortOrder:  req.SortOrder,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.accountRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ResolveAccount accepts either an account id or a unique account name, so
// callers can address accounts the way a human refers to them.
func (s *accountService) ResolveAccount(ctx context.Context, nameOrID string) (*domain.Account, error) {
	if _, err := uuid.Parse(nameOrID); err == nil {
		account, err := s.accountRepo.FindAccountByID(ctx, nameOrID)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve account %s: %w", nameOrID, err)
		}
	}

	account, err := s.accountRepo.FindAccountByName(ctx, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %q: %w", nameOrID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.accountRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
