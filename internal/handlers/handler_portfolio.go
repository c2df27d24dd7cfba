package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

// portfolioHandler handles HTTP requests for the valued portfolio view.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvc
	currencyService  portssvc.CurrencyReaderSvc
}

// newPortfolioHandler creates a new portfolioHandler.
func newPortfolioHandler(ps portssvc.PortfolioSvc, cs portssvc.CurrencyReaderSvc) *portfolioHandler {
	return &portfolioHandler{
		portfolioService: ps,
		currencyService:  cs,
	}
}

// registerPortfolioRoutes registers routes related to the portfolio view.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvc, currencyService portssvc.CurrencySvcFacade) {
	h := newPortfolioHandler(portfolioService, currencyService)

	portfolio := rg.Group("/portfolio")
	{
		// POST because the caller supplies the price snapshot in the body;
		// nothing is mutated.
		portfolio.POST("/value", h.valuePortfolio)
		portfolio.GET("", h.getPortfolio)
	}
}

// valuePortfolio values the whole book against the caller's price snapshot.
// Assets missing from the snapshot come back unvalued rather than failing the
// entire view.
func (h *portfolioHandler) valuePortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ValuePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValuePortfolio", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	prices := func(asset string) (decimal.Decimal, bool) {
		price, ok := req.Prices[asset]
		return price, ok
	}

	h.respondWithPortfolio(c, prices)
}

// getPortfolio serves the unvalued snapshot: positions and cost figures only.
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	h.respondWithPortfolio(c, nil)
}

func (h *portfolioHandler) respondWithPortfolio(c *gin.Context, prices domain.PriceFn) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), prices)
	if err != nil {
		logger.Error("Failed to build portfolio view", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		return
	}

	display := quantityDisplayer(c.Request.Context(), h.currencyService)
	c.JSON(http.StatusOK, dto.ToPortfolioResponse(*portfolio, display))
}
