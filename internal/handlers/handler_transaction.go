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

// transactionHandler handles HTTP requests into the recorder and over the log.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	currencyService    portssvc.CurrencyReaderSvc
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, cs portssvc.CurrencyReaderSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		currencyService:    cs,
	}
}

// registerTransactionRoutes registers routes related to the recorder and the log.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, currencyService portssvc.CurrencySvcFacade) {
	h := newTransactionHandler(transactionService, currencyService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/buy", h.recordBuy)
		transactions.POST("/sell", h.recordSell)
		transactions.POST("/transfer", h.recordTransfer)
		transactions.POST("/swap", h.recordSwap)
		transactions.GET("", h.listTransactions)
	}
}

// respondRecordError maps recorder failures onto HTTP statuses. Business rule
// violations on an otherwise well-formed request are 422s.
func respondRecordError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error recording transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Unknown reference recording transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientHoldings):
		logger.Warn("Insufficient holdings for transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		logger.Warn("No conversion rate for fee asset", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrArithmetic):
		logger.Warn("Arithmetic error recording transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent transaction conflict, caller should retry", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to record transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
	}
}

func (h *transactionHandler) toRecordedResponse(c *gin.Context, recorded *domain.RecordedTransaction) dto.RecordedTransactionResponse {
	display := quantityDisplayer(c.Request.Context(), h.currencyService)

	holdings := make([]dto.HoldingResponse, len(recorded.Holdings))
	for i := range recorded.Holdings {
		holding := &recorded.Holdings[i]
		holdings[i] = dto.ToHoldingResponse(holding, display(holding.Asset, holding.Quantity))
	}

	res := dto.RecordedTransactionResponse{
		Transaction: dto.ToTransactionResponse(&recorded.Transaction),
		Holdings:    holdings,
	}
	if recorded.Transaction.TxType != domain.TxBuy {
		pnl := recorded.RealizedPnL
		res.RealizedPnL = &pnl
	}
	if recorded.CapturedRate != nil {
		rate := dto.ToExchangeRateResponse(recorded.CapturedRate)
		res.CapturedRate = &rate
	}
	return res
}

func (h *transactionHandler) recordBuy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordBuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordBuy", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID), slog.String("asset", req.Asset))
	logger.Info("Received request to record buy")

	recorded, err := h.transactionService.RecordBuy(c.Request.Context(), req)
	if err != nil {
		respondRecordError(c, logger, err)
		return
	}

	logger.Info("Buy recorded successfully", slog.String("transaction_id", recorded.Transaction.TransactionID))
	c.JSON(http.StatusCreated, h.toRecordedResponse(c, recorded))
}

func (h *transactionHandler) recordSell(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSell", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID), slog.String("asset", req.Asset))
	logger.Info("Received request to record sell")

	recorded, err := h.transactionService.RecordSell(c.Request.Context(), req)
	if err != nil {
		respondRecordError(c, logger, err)
		return
	}

	logger.Info("Sell recorded successfully", slog.String("transaction_id", recorded.Transaction.TransactionID))
	c.JSON(http.StatusCreated, h.toRecordedResponse(c, recorded))
}

func (h *transactionHandler) recordTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("asset", req.Asset),
	)
	logger.Info("Received request to record transfer")

	recorded, err := h.transactionService.RecordTransfer(c.Request.Context(), req)
	if err != nil {
		respondRecordError(c, logger, err)
		return
	}

	logger.Info("Transfer recorded successfully", slog.String("transaction_id", recorded.Transaction.TransactionID))
	c.JSON(http.StatusCreated, h.toRecordedResponse(c, recorded))
}

func (h *transactionHandler) recordSwap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSwap", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("from_asset", req.FromAsset),
		slog.String("to_asset", req.ToAsset),
	)
	logger.Info("Received request to record swap")

	recorded, err := h.transactionService.RecordSwap(c.Request.Context(), req)
	if err != nil {
		respondRecordError(c, logger, err)
		return
	}

	logger.Info("Swap recorded successfully", slog.String("transaction_id", recorded.Transaction.TransactionID))
	c.JSON(http.StatusCreated, h.toRecordedResponse(c, recorded))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternal.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    nextToken,
	})
}
