package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
	"github.com/cryptofolio/ledgerd/internal/utils"
)

// holdingHandler handles HTTP requests over the current positions.
type holdingHandler struct {
	holdingService  portssvc.HoldingReaderSvc
	currencyService portssvc.CurrencyReaderSvc
}

// newHoldingHandler creates a new holdingHandler.
func newHoldingHandler(hs portssvc.HoldingReaderSvc, cs portssvc.CurrencyReaderSvc) *holdingHandler {
	return &holdingHandler{
		holdingService:  hs,
		currencyService: cs,
	}
}

// registerHoldingRoutes registers routes related to holdings.
func registerHoldingRoutes(rg *gin.RouterGroup, holdingService portssvc.HoldingSvcFacade, currencyService portssvc.CurrencySvcFacade) {
	h := newHoldingHandler(holdingService, currencyService)

	holdings := rg.Group("/holdings")
	{
		holdings.GET("", h.listHoldings)
		holdings.GET("/:accountId", h.listHoldingsByAccount)
		holdings.GET("/:accountId/:asset", h.getHolding)
	}
}

// quantityDisplayer renders quantities with each asset's cataloged precision,
// caching catalog lookups for the duration of one request. Unknown assets fall
// back to the raw decimal string.
func quantityDisplayer(ctx context.Context, currencyService portssvc.CurrencyReaderSvc) func(asset string, qty decimal.Decimal) string {
	cache := make(map[string]*domain.Currency)
	return func(asset string, qty decimal.Decimal) string {
		currency, seen := cache[asset]
		if !seen {
			currency, _ = currencyService.GetCurrencyByCode(ctx, asset)
			cache[asset] = currency
		}
		if currency == nil {
			return qty.String()
		}
		return utils.FormatWithCurrencyPrecision(qty, *currency)
	}
}

func (h *holdingHandler) toHoldingResponses(ctx context.Context, holdings []domain.Holding) []dto.HoldingResponse {
	display := quantityDisplayer(ctx, h.currencyService)
	res := make([]dto.HoldingResponse, len(holdings))
	for i := range holdings {
		res[i] = dto.ToHoldingResponse(&holdings[i], display(holdings[i].Asset, holdings[i].Quantity))
	}
	return res
}

func (h *holdingHandler) listHoldings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	holdings, err := h.holdingService.ListHoldings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list holdings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		return
	}

	c.JSON(http.StatusOK, h.toHoldingResponses(c.Request.Context(), holdings))
}

func (h *holdingHandler) listHoldingsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")

	holdings, err := h.holdingService.ListHoldingsByAccount(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list account holdings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		return
	}

	c.JSON(http.StatusOK, h.toHoldingResponses(c.Request.Context(), holdings))
}

func (h *holdingHandler) getHolding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")
	asset := c.Param("asset")

	holding, err := h.holdingService.GetHolding(c.Request.Context(), accountID, asset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Holding not found"})
		} else {
			logger.Error("Failed to get holding from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		}
		return
	}

	display := quantityDisplayer(c.Request.Context(), h.currencyService)
	c.JSON(http.StatusOK, dto.ToHoldingResponse(holding, display(holding.Asset, holding.Quantity)))
}
