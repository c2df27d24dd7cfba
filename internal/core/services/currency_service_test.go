package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/core/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestRegisterCurrency_Success() {
	ctx := context.Background()
	req := dto.RegisterCurrencyRequest{
		Code:       "BTC",
		Name:       "Bitcoin",
		Symbol:     "₿",
		Precision:  8,
		AssetClass: "crypto",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "BTC" && c.AssetClass == domain.Crypto && c.Enabled
	})).Return(nil).Once()

	currency, err := suite.service.RegisterCurrency(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.Equal("BTC", currency.Code)
	suite.Equal(domain.Crypto, currency.AssetClass)
	suite.True(currency.Enabled)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestRegisterCurrency_LowercasesNothingButCode() {
	ctx := context.Background()
	req := dto.RegisterCurrencyRequest{
		Code:       "usdt",
		Name:       "Tether",
		Symbol:     "₮",
		Precision:  2,
		AssetClass: "stablecoin",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "USDT" && c.AssetClass == domain.Stablecoin
	})).Return(nil).Once()

	currency, err := suite.service.RegisterCurrency(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("USDT", currency.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestRegisterCurrency_UnknownAssetClass() {
	ctx := context.Background()
	req := dto.RegisterCurrencyRequest{
		Code:       "XYZ",
		Name:       "Mystery",
		Symbol:     "?",
		AssetClass: "commodity",
	}

	currency, err := suite.service.RegisterCurrency(ctx, req)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency")
}

func (suite *CurrencyServiceTestSuite) TestRegisterCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.RegisterCurrencyRequest{
		Code:       "USD",
		Name:       "US Dollar",
		Symbol:     "$",
		Precision:  2,
		AssetClass: "fiat",
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(apperrors.ErrDuplicate).Once()

	currency, err := suite.service.RegisterCurrency(ctx, req)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "NTF").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "ntf")

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_FilterByAssetClass() {
	ctx := context.Background()
	fiat := domain.Fiat
	expected := []domain.Currency{
		{Code: "USD", AssetClass: domain.Fiat},
		{Code: "EUR", AssetClass: domain.Fiat},
	}

	suite.mockRepo.On("ListCurrencies", ctx, mock.MatchedBy(func(f portsrepo.CurrencyListFilter) bool {
		return f.AssetClass != nil && *f.AssetClass == fiat && f.EnabledOnly
	})).Return(expected, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, dto.ListCurrenciesParams{AssetClass: "fiat", EnabledOnly: true})

	suite.Require().NoError(err)
	suite.Equal(expected, currencies)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_BadAssetClass() {
	ctx := context.Background()

	currencies, err := suite.service.ListCurrencies(ctx, dto.ListCurrenciesParams{AssetClass: "shiny"})

	suite.Require().Error(err)
	suite.Nil(currencies)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListCurrencies")
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCurrencies", ctx, mock.AnythingOfType("repositories.CurrencyListFilter")).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx, dto.ListCurrenciesParams{})

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_Success() {
	ctx := context.Background()
	existing := &domain.Currency{Code: "BTC", Name: "Bitcoin", Symbol: "B", Precision: 8, AssetClass: domain.Crypto, Enabled: true}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "BTC").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "BTC" && c.Symbol == "₿" && c.Precision == 8
	})).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, "BTC", dto.UpdateCurrencyRequest{Name: "Bitcoin", Symbol: "₿", Precision: 8})

	suite.Require().NoError(err)
	suite.Equal("₿", currency.Symbol)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "NTF").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.UpdateCurrency(ctx, "NTF", dto.UpdateCurrencyRequest{Name: "x", Symbol: "x"})

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency")
}

func (suite *CurrencyServiceTestSuite) TestSetCurrencyEnabled_Disable() {
	ctx := context.Background()
	disabled := &domain.Currency{Code: "DOGE", AssetClass: domain.Crypto, Enabled: false}

	suite.mockRepo.On("SetCurrencyEnabled", ctx, "DOGE", false).Return(nil).Once()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "DOGE").Return(disabled, nil).Once()

	currency, err := suite.service.SetCurrencyEnabled(ctx, "DOGE", false)

	suite.Require().NoError(err)
	suite.False(currency.Enabled)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestSetCurrencyEnabled_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SetCurrencyEnabled", ctx, "BTC", true).Return(expectedErr).Once()

	currency, err := suite.service.SetCurrencyEnabled(ctx, "BTC", true)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
