package mapping

import (
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	"github.com/cryptofolio/ledgerd/internal/models"
)

// ToModelAccount converts a domain account to its database row shape.
func ToModelAccount(a domain.Account) models.Account {
	return models.Account{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		CategoryID:  a.CategoryID,
		CreatedAt:   a.CreatedAt,
	}
}

// ToDomainAccount converts a database row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	accountType, ok := domain.ParseAccountType(m.AccountType)
	if !ok {
		accountType = domain.Exchange
	}
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		AccountType: accountType,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainAccountSlice converts a slice of rows.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}

// ToDomainCategory converts a database row to the domain representation.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		SortOrder:  m.SortOrder,
		CreatedAt:  m.CreatedAt,
	}
}
