package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/core/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, currencySvc)
}

func (suite *ExchangeRateServiceTestSuite) expectCurrency(code string, class domain.AssetClass) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, code).
		Return(&domain.Currency{Code: code, AssetClass: class, Enabled: true}, nil)
}

func (suite *ExchangeRateServiceTestSuite) TestRecordRate_Success() {
	ctx := context.Background()
	suite.expectCurrency("USD", domain.Fiat)
	suite.expectCurrency("CRC", domain.Fiat)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USD" && r.ToCurrencyCode == "CRC" &&
			r.Rate.Equal(decimal.NewFromInt(550)) &&
			r.Timestamp.Equal(ts) &&
			r.Source == domain.RateSourceManual
	})).Return("rate-row-1", nil).Once()

	rate, err := suite.service.RecordRate(ctx, dto.RecordExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "CRC",
		Rate:             decimal.NewFromInt(550),
		Timestamp:        &ts,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("rate-row-1", rate.ExchangeRateID)
	suite.Equal("USD/CRC", rate.Pair())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRecordRate_ReplacementKeepsRowID() {
	// A second write for the same (from, to, timestamp) replaces the stored
	// observation; the repository hands back the surviving row's id.
	ctx := context.Background()
	suite.expectCurrency("USD", domain.Fiat)
	suite.expectCurrency("CRC", domain.Fiat)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.Rate.Equal(decimal.NewFromInt(555))
	})).Return("rate-row-1", nil).Once()

	rate, err := suite.service.RecordRate(ctx, dto.RecordExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "CRC",
		Rate:             decimal.NewFromInt(555),
		Timestamp:        &ts,
	})

	suite.Require().NoError(err)
	suite.Equal("rate-row-1", rate.ExchangeRateID)
	suite.True(rate.Rate.Equal(decimal.NewFromInt(555)))
}

func (suite *ExchangeRateServiceTestSuite) TestRecordRate_SamePairRejected() {
	ctx := context.Background()

	rate, err := suite.service.RecordRate(ctx, dto.RecordExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestRecordRate_NonPositiveRate() {
	ctx := context.Background()

	rate, err := suite.service.RecordRate(ctx, dto.RecordExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "CRC",
		Rate:             decimal.Zero,
	})

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestRecordRate_UnknownCurrency() {
	ctx := context.Background()
	suite.expectCurrency("USD", domain.Fiat)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "XXX").Return(nil, apperrors.ErrNotFound)

	rate, err := suite.service.RecordRate(ctx, dto.RecordExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XXX",
		Rate:             decimal.NewFromInt(2),
	})

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestGetLatestRate_Directional() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "CRC", Rate: decimal.NewFromInt(550)}

	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "CRC").Return(stored, nil).Once()

	rate, err := suite.service.GetLatestRate(ctx, "usd", "crc")

	suite.Require().NoError(err)
	suite.Equal(stored, rate)
	// The reverse pair is a separate lookup; nothing inverts implicitly.
	suite.mockRateRepo.On("FindLatestRate", ctx, "CRC", "USD").Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.GetLatestRate(ctx, "CRC", "USD")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateAsOf() {
	ctx := context.Background()
	at := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.RequireFromString("1.08")}

	suite.mockRateRepo.On("FindRateAsOf", ctx, "EUR", "USD", at).Return(stored, nil).Once()

	rate, err := suite.service.GetRateAsOf(ctx, "EUR", "USD", at)

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("1.08")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateHistory_ClampsLimit() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListRateHistory", ctx, "USD", "CRC", 50, (*string)(nil)).Return([]domain.ExchangeRate{}, nil, nil).Once()
	suite.mockRateRepo.On("ListRateHistory", ctx, "USD", "CRC", 200, (*string)(nil)).Return([]domain.ExchangeRate{}, nil, nil).Once()

	_, _, err := suite.service.GetRateHistory(ctx, "USD", "CRC", 0, nil)
	suite.Require().NoError(err)
	_, _, err = suite.service.GetRateHistory(ctx, "USD", "CRC", 1000, nil)
	suite.Require().NoError(err)

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
