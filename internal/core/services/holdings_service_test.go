package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/core/services"
)

type HoldingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockHoldingRepository
	service  portssvc.HoldingSvcFacade
}

func (suite *HoldingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockHoldingRepository)
	suite.service = services.NewHoldingsService(suite.mockRepo, "USD")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_FirstBuyTakesPrice() {
	ctx := context.Background()

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(nil, nil).Once()
	suite.mockRepo.On("UpsertHoldingInTx", ctx, nil, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity.Equal(dec("0.1")) &&
			h.AvgCostBasis.Equal(dec("50000")) &&
			h.CostBasisCurrency == "USD"
	})).Return(nil).Once()

	price := dec("50000")
	holding, realized, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("0.1"), &price)

	suite.Require().NoError(err)
	suite.True(realized.IsZero())
	suite.True(holding.Quantity.Equal(dec("0.1")))
	suite.True(holding.AvgCostBasis.Equal(dec("50000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_IncreaseBlendsAverage() {
	ctx := context.Background()
	existing := &domain.Holding{
		AccountID: "acct-1", Asset: "BTC",
		Quantity: dec("0.1"), AvgCostBasis: dec("50000"), CostBasisCurrency: "USD",
	}

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertHoldingInTx", ctx, nil, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity.Equal(dec("0.2")) && h.AvgCostBasis.Equal(dec("55000"))
	})).Return(nil).Once()

	price := dec("60000")
	holding, _, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("0.1"), &price)

	suite.Require().NoError(err)
	suite.True(holding.Quantity.Equal(dec("0.2")))
	suite.True(holding.AvgCostBasis.Equal(dec("55000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_NoPriceInheritsBasis() {
	ctx := context.Background()
	existing := &domain.Holding{
		AccountID: "acct-1", Asset: "BTC",
		Quantity: dec("0.5"), AvgCostBasis: dec("40000"), CostBasisCurrency: "USD",
	}

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertHoldingInTx", ctx, nil, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity.Equal(dec("0.7")) && h.AvgCostBasis.Equal(dec("40000"))
	})).Return(nil).Once()

	holding, _, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("0.2"), nil)

	suite.Require().NoError(err)
	suite.True(holding.AvgCostBasis.Equal(dec("40000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_DecreaseKeepsBasisAndRealizes() {
	ctx := context.Background()
	existing := &domain.Holding{
		AccountID: "acct-1", Asset: "BTC",
		Quantity: dec("0.2"), AvgCostBasis: dec("55000"), CostBasisCurrency: "USD",
	}

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertHoldingInTx", ctx, nil, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity.Equal(dec("0.1")) && h.AvgCostBasis.Equal(dec("55000"))
	})).Return(nil).Once()

	price := dec("60000")
	holding, realized, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("-0.1"), &price)

	suite.Require().NoError(err)
	suite.True(holding.AvgCostBasis.Equal(dec("55000")))
	suite.True(realized.Equal(dec("500")), "realized = (60000-55000)*0.1, got %s", realized)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_SellAllLeavesZeroQuantityRow() {
	ctx := context.Background()
	existing := &domain.Holding{
		AccountID: "acct-1", Asset: "BTC",
		Quantity: dec("0.2"), AvgCostBasis: dec("55000"), CostBasisCurrency: "USD",
	}

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(existing, nil).Once()
	suite.mockRepo.On("UpsertHoldingInTx", ctx, nil, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity.IsZero() && h.AvgCostBasis.Equal(dec("55000"))
	})).Return(nil).Once()

	price := dec("60000")
	holding, _, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("-0.2"), &price)

	suite.Require().NoError(err)
	suite.True(holding.Quantity.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_OverdrawFailsWithoutWrite() {
	ctx := context.Background()
	existing := &domain.Holding{
		AccountID: "acct-1", Asset: "BTC",
		Quantity: dec("0.2"), AvgCostBasis: dec("55000"), CostBasisCurrency: "USD",
	}

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "BTC").Return(existing, nil).Once()

	holding, _, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "BTC", dec("-0.3"), nil)

	suite.Require().Error(err)
	suite.Nil(holding)
	suite.ErrorIs(err, apperrors.ErrInsufficientHoldings)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertHoldingInTx")
}

func (suite *HoldingsServiceTestSuite) TestApplyDelta_OverdrawOnMissingHolding() {
	ctx := context.Background()

	suite.mockRepo.On("FindHoldingForUpdate", ctx, nil, "acct-1", "ETH").Return(nil, nil).Once()

	holding, _, err := suite.service.ApplyDeltaInTx(ctx, nil, "acct-1", "ETH", dec("-1"), nil)

	suite.Require().Error(err)
	suite.Nil(holding)
	suite.ErrorIs(err, apperrors.ErrInsufficientHoldings)
}

func (suite *HoldingsServiceTestSuite) TestGetHolding_Passthrough() {
	ctx := context.Background()
	existing := &domain.Holding{AccountID: "acct-1", Asset: "BTC", Quantity: dec("1")}

	suite.mockRepo.On("FindHolding", ctx, "acct-1", "BTC").Return(existing, nil).Once()

	holding, err := suite.service.GetHolding(ctx, "acct-1", "BTC")

	suite.Require().NoError(err)
	suite.Equal(existing, holding)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HoldingsServiceTestSuite) TestListHoldings_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListHoldings", ctx).Return(nil, nil).Once()

	holdings, err := suite.service.ListHoldings(ctx)

	suite.Require().NoError(err)
	suite.NotNil(holdings)
	suite.Empty(holdings)
}

func TestHoldingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HoldingsServiceTestSuite))
}
