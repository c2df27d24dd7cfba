package dto

import (
	"time"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a venue account.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,accounttype"`
	CategoryID  string `json:"categoryId" binding:"omitempty,uuid"`
}

// CreateCategoryRequest defines the data needed to create a reporting category.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string    `json:"accountId"`
	Name        string    `json:"name"`
	AccountType string    `json:"accountType"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		CategoryID:  a.CategoryID,
		CreatedAt:   a.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain accounts to DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = ToAccountResponse(&a)
	}
	return res
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		SortOrder:  c.SortOrder,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain categories to DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
