package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/core/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Kraken" && a.AccountType == domain.Exchange && a.AccountID != ""
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        "Kraken",
		AccountType: "exchange",
	})

	suite.Require().NoError(err)
	suite.Equal("Kraken", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        "Shoe box",
		AccountType: "mattress",
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCategory() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        "Kraken",
		AccountType: "exchange",
		CategoryID:  categoryID,
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:        "Kraken",
		AccountType: "exchange",
	})

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestResolveAccount_ByID() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.Account{AccountID: accountID, Name: "Kraken"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(expected, nil).Once()

	account, err := suite.service.ResolveAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByName")
}

func (suite *AccountServiceTestSuite) TestResolveAccount_ByNameFallback() {
	ctx := context.Background()
	expected := &domain.Account{AccountID: uuid.NewString(), Name: "Ledger Nano"}

	suite.mockRepo.On("FindAccountByName", ctx, "Ledger Nano").Return(expected, nil).Once()

	account, err := suite.service.ResolveAccount(ctx, "Ledger Nano")

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID")
}

func (suite *AccountServiceTestSuite) TestResolveAccount_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByName", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.ResolveAccount(ctx, "nope")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Cold storage" && c.SortOrder == 2
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Cold storage", SortOrder: 2})

	suite.Require().NoError(err)
	suite.Equal("Cold storage", category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
