package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.recordRate)
		rates.GET("/latest", h.getRate)
		rates.GET("/history", h.getRateHistory)
	}
}

func (h *exchangeRateHandler) recordRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("from_currency", req.FromCurrencyCode),
		slog.String("to_currency", req.ToCurrencyCode),
	)
	logger.Info("Received request to record exchange rate")

	rate, err := h.rateService.RecordRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Unknown currency in rate pair")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both currencies of the pair must be cataloged"})
		} else {
			logger.Error("Failed to record rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		}
		return
	}

	logger.Info("Exchange rate recorded successfully", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getRate serves the latest observation for a pair, or the newest one at or
// before ?at= when given. Pairs are directional; USD->CRC says nothing about
// CRC->USD. ?invert=true derives the reverse-direction rate from the stored
// observation, tagged with source "calculated"; nothing is written.
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RateQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var rate *domain.ExchangeRate
	var err error
	if params.At != nil {
		rate, err = h.rateService.GetRateAsOf(c.Request.Context(), params.From, params.To, *params.At)
	} else {
		rate, err = h.rateService.GetLatestRate(c.Request.Context(), params.From, params.To)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No rate observation for pair",
				slog.String("from_currency", params.From),
				slog.String("to_currency", params.To),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate recorded for this pair"})
		} else {
			logger.Error("Failed to get rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		}
		return
	}

	if params.Invert {
		inv := rate.Inverse()
		rate = &inv
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

func (h *exchangeRateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RateHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rates, nextToken, err := h.rateService.GetRateHistory(c.Request.Context(), params.From, params.To, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get rate history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RateHistoryResponse{
		Rates:     dto.ToListExchangeRateResponse(rates),
		NextToken: nextToken,
	})
}
