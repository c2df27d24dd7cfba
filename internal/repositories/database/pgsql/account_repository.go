package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	"github.com/cryptofolio/ledgerd/internal/models"
	"github.com/cryptofolio/ledgerd/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool PgxPool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, category_id, created_at`

// scanAccount handles the nullable category column.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var categoryID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&categoryID,
		&m.CreatedAt,
	)
	m.CategoryID = categoryID.String
	return m, err
}

// SaveAccount persists a new account. A taken name reports apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	categoryID := sql.NullString{String: m.CategoryID, Valid: m.CategoryID != ""}
	query := `
		INSERT INTO accounts (account_id, name, account_type, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.AccountType, categoryID, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save account %s: %w", m.Name, err)
	}
	return nil
}

// FindAccountByID retrieves an account by id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return r.findAccount(ctx, query, accountID)
}

// FindAccountByName retrieves an account by its unique name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1;`
	return r.findAccount(ctx, query, name)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var modelAccounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// SaveCategory persists a new category.
func (r *PgxAccountRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, category.CategoryID, category.Name, category.SortOrder, category.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save category %s: %w", category.Name, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by id.
func (r *PgxAccountRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT category_id, name, sort_order, created_at FROM categories WHERE category_id = $1;`

	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.SortOrder, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves all categories ordered by sort order.
func (r *PgxAccountRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT category_id, name, sort_order, created_at FROM categories ORDER BY sort_order, name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.SortOrder, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}
