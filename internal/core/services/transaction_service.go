package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

const (
	defaultTxnLimit = 50
	maxTxnLimit     = 200
)

// transactionService is the single write path into the ledger. Every Record*
// call validates all legs up front, then applies holdings deltas, appends the
// audit record, and captures any implied rate inside one database transaction
// owned by this service.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	holdingRepo portsrepo.HoldingRepositoryWithTx
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	holdingSvc  portssvc.HoldingWriterSvc
	accountSvc  portssvc.AccountReaderSvc
	currencySvc portssvc.CurrencyReaderSvc
}

// NewTransactionService creates a new transaction recorder service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	holdingRepo portsrepo.HoldingRepositoryWithTx,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	holdingSvc portssvc.HoldingWriterSvc,
	accountSvc portssvc.AccountReaderSvc,
	currencySvc portssvc.CurrencyReaderSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		holdingRepo: holdingRepo,
		rateRepo:    rateRepo,
		holdingSvc:  holdingSvc,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// requireEnabledCurrency validates that the asset is cataloged and enabled.
func (s *transactionService) requireEnabledCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", code, err)
	}
	if !currency.Enabled {
		return nil, fmt.Errorf("%w: currency %s is disabled", apperrors.ErrValidation, currency.Code)
	}
	return currency, nil
}

func (s *transactionService) requireAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}
	return account, nil
}

// normalizeFee validates an optional fee and defaults its asset.
func normalizeFee(fee *decimal.Decimal, feeAsset, defaultAsset string) (decimal.Decimal, string, error) {
	if fee == nil || fee.IsZero() {
		return decimal.Zero, "", nil
	}
	if fee.IsNegative() {
		return decimal.Zero, "", fmt.Errorf("%w: fee must not be negative", apperrors.ErrValidation)
	}
	asset := strings.ToUpper(feeAsset)
	if asset == "" {
		asset = defaultAsset
	}
	return *fee, asset, nil
}

func timestampOrNow(ts *time.Time) time.Time {
	if ts != nil {
		return ts.UTC()
	}
	return time.Now().UTC()
}

// convertFee expresses a fee denominated in feeAsset as units of asset, using
// the rate observed at or before the transaction timestamp.
func (s *transactionService) convertFee(ctx context.Context, fee decimal.Decimal, feeAsset, asset string, at time.Time) (decimal.Decimal, error) {
	if feeAsset == asset {
		return fee, nil
	}
	rate, err := s.rateRepo.FindRateAsOf(ctx, feeAsset, asset, at)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no %s/%s rate at %s to convert fee",
				apperrors.ErrRateUnavailable, feeAsset, asset, at.Format(time.RFC3339))
		}
		return decimal.Zero, fmt.Errorf("failed to look up fee conversion rate: %w", err)
	}
	return fee.Mul(rate.Rate), nil
}

func (s *transactionService) RecordBuy(ctx context.Context, req dto.RecordBuyRequest) (*domain.RecordedTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive", apperrors.ErrValidation)
	}
	account, err := s.requireAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	asset := strings.ToUpper(req.Asset)
	if _, err := s.requireEnabledCurrency(ctx, asset); err != nil {
		return nil, err
	}
	fee, feeAsset, err := normalizeFee(req.Fee, req.FeeAsset, asset)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxType:        domain.TxBuy,
		ToAccountID:   account.AccountID,
		ToAsset:       asset,
		ToQuantity:    req.Quantity,
		UnitPrice:     req.UnitPrice,
		Fee:           fee,
		FeeAsset:      feeAsset,
		Notes:         req.Notes,
		Timestamp:     timestampOrNow(req.Timestamp),
		CreatedAt:     now,
	}

	var holding *domain.Holding
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		price := req.UnitPrice
		holding, _, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, account.AccountID, asset, req.Quantity, &price)
		if err != nil {
			return err
		}
		return s.txnRepo.SaveTransactionInTx(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Buy recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("asset", asset),
		slog.String("quantity", req.Quantity.String()))
	return &domain.RecordedTransaction{
		Transaction: txn,
		Holdings:    []domain.Holding{*holding},
		RealizedPnL: decimal.Zero,
	}, nil
}

func (s *transactionService) RecordSell(ctx context.Context, req dto.RecordSellRequest) (*domain.RecordedTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit price must be positive", apperrors.ErrValidation)
	}
	account, err := s.requireAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	asset := strings.ToUpper(req.Asset)
	if _, err := s.requireEnabledCurrency(ctx, asset); err != nil {
		return nil, err
	}
	fee, feeAsset, err := normalizeFee(req.Fee, req.FeeAsset, asset)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxType:        domain.TxSell,
		FromAccountID: account.AccountID,
		FromAsset:     asset,
		FromQuantity:  req.Quantity,
		UnitPrice:     req.UnitPrice,
		Fee:           fee,
		FeeAsset:      feeAsset,
		Notes:         req.Notes,
		Timestamp:     timestampOrNow(req.Timestamp),
		CreatedAt:     now,
	}

	var holding *domain.Holding
	realized := decimal.Zero
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		price := req.UnitPrice
		holding, realized, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, account.AccountID, asset, req.Quantity.Neg(), &price)
		if err != nil {
			return err
		}
		return s.txnRepo.SaveTransactionInTx(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Sell recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("asset", asset),
		slog.String("realized_pnl", realized.String()))
	return &domain.RecordedTransaction{
		Transaction: txn,
		Holdings:    []domain.Holding{*holding},
		RealizedPnL: realized,
	}, nil
}

func (s *transactionService) RecordTransfer(ctx context.Context, req dto.RecordTransferRequest) (*domain.RecordedTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: transfer requires two distinct accounts", apperrors.ErrValidation)
	}
	fromAccount, err := s.requireAccount(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount, err := s.requireAccount(ctx, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	asset := strings.ToUpper(req.Asset)
	if _, err := s.requireEnabledCurrency(ctx, asset); err != nil {
		return nil, err
	}

	timestamp := timestampOrNow(req.Timestamp)
	fee, feeAsset, err := normalizeFee(req.Fee, req.FeeAsset, asset)
	if err != nil {
		return nil, err
	}
	// The fee reduces what arrives at the destination; a foreign-denominated
	// fee is converted at the rate observed at the transaction timestamp.
	feeInAsset := decimal.Zero
	if !fee.IsZero() {
		feeInAsset, err = s.convertFee(ctx, fee, feeAsset, asset, timestamp)
		if err != nil {
			return nil, err
		}
	}
	netReceived := req.Quantity.Sub(feeInAsset)
	if !netReceived.IsPositive() {
		return nil, fmt.Errorf("%w: fee %s consumes the whole transfer quantity %s",
			apperrors.ErrValidation, feeInAsset.String(), req.Quantity.String())
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxType:        domain.TxTransfer,
		FromAccountID: fromAccount.AccountID,
		FromAsset:     asset,
		FromQuantity:  req.Quantity,
		ToAccountID:   toAccount.AccountID,
		ToAsset:       asset,
		ToQuantity:    netReceived,
		Fee:           fee,
		FeeAsset:      feeAsset,
		Notes:         req.Notes,
		Timestamp:     timestamp,
		CreatedAt:     now,
	}

	var source, dest *domain.Holding
	realized := decimal.Zero
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		source, _, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, fromAccount.AccountID, asset, req.Quantity.Neg(), nil)
		if err != nil {
			return err
		}
		// The destination inherits the source's per-unit basis; the fee units
		// vanish at that basis and surface as an advisory realized loss.
		basis := source.AvgCostBasis
		dest, _, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, toAccount.AccountID, asset, netReceived, &basis)
		if err != nil {
			return err
		}
		realized = feeInAsset.Mul(basis).Neg()
		return s.txnRepo.SaveTransactionInTx(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("asset", asset),
		slog.String("net_received", netReceived.String()))
	return &domain.RecordedTransaction{
		Transaction: txn,
		Holdings:    []domain.Holding{*source, *dest},
		RealizedPnL: realized,
	}, nil
}

func (s *transactionService) RecordSwap(ctx context.Context, req dto.RecordSwapRequest) (*domain.RecordedTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.FromQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: from quantity must be positive", apperrors.ErrValidation)
	}
	if req.ToQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: to quantity must not be negative", apperrors.ErrValidation)
	}
	if req.ToQuantity.IsZero() {
		return nil, fmt.Errorf("%w: cannot derive a swap price with zero received quantity", apperrors.ErrArithmetic)
	}
	fromAsset := strings.ToUpper(req.FromAsset)
	toAsset := strings.ToUpper(req.ToAsset)
	if fromAsset == toAsset {
		return nil, fmt.Errorf("%w: swap requires two distinct assets", apperrors.ErrValidation)
	}
	if req.Rate != nil && !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: manual rate must be positive", apperrors.ErrValidation)
	}
	fromAccount, err := s.requireAccount(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	toAccount := fromAccount
	if req.ToAccountID != req.FromAccountID {
		toAccount, err = s.requireAccount(ctx, req.ToAccountID)
		if err != nil {
			return nil, err
		}
	}
	fromCurrency, err := s.requireEnabledCurrency(ctx, fromAsset)
	if err != nil {
		return nil, err
	}
	toCurrency, err := s.requireEnabledCurrency(ctx, toAsset)
	if err != nil {
		return nil, err
	}
	fee, feeAsset, err := normalizeFee(req.Fee, req.FeeAsset, fromAsset)
	if err != nil {
		return nil, err
	}

	timestamp := timestampOrNow(req.Timestamp)
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		TxType:        domain.TxSwap,
		FromAccountID: fromAccount.AccountID,
		FromAsset:     fromAsset,
		FromQuantity:  req.FromQuantity,
		ToAccountID:   toAccount.AccountID,
		ToAsset:       toAsset,
		ToQuantity:    req.ToQuantity,
		Fee:           fee,
		FeeAsset:      feeAsset,
		Notes:         req.Notes,
		Timestamp:     timestamp,
		CreatedAt:     now,
	}

	var source, dest *domain.Holding
	var captured *domain.ExchangeRate
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		source, _, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, fromAccount.AccountID, fromAsset, req.FromQuantity.Neg(), nil)
		if err != nil {
			return err
		}
		// The value leaving the source leg carries over: the received units
		// are priced so that total cost is conserved across the swap.
		impliedPrice := source.AvgCostBasis.Mul(req.FromQuantity).Div(req.ToQuantity)
		dest, _, err = s.holdingSvc.ApplyDeltaInTx(ctx, tx, toAccount.AccountID, toAsset, req.ToQuantity, &impliedPrice)
		if err != nil {
			return err
		}

		if fromCurrency.IsFiat() && toCurrency.IsFiat() {
			rate := req.ToQuantity.Div(req.FromQuantity)
			if req.Rate != nil {
				rate = *req.Rate
			}
			capture := domain.ExchangeRate{
				ExchangeRateID:   uuid.NewString(),
				FromCurrencyCode: fromAsset,
				ToCurrencyCode:   toAsset,
				Rate:             rate,
				Timestamp:        timestamp,
				Source:           domain.RateSourceSwap,
				Notes:            "captured from swap " + txn.TransactionID,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			id, err := s.rateRepo.UpsertExchangeRateInTx(ctx, tx, capture)
			if err != nil {
				return fmt.Errorf("failed to capture swap rate %s: %w", capture.Pair(), err)
			}
			capture.ExchangeRateID = id
			captured = &capture
		}
		return s.txnRepo.SaveTransactionInTx(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Swap recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("pair", fromAsset+"/"+toAsset),
		slog.Bool("rate_captured", captured != nil))
	return &domain.RecordedTransaction{
		Transaction:  txn,
		Holdings:     []domain.Holding{*source, *dest},
		RealizedPnL:  decimal.Zero,
		CapturedRate: captured,
	}, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTxnLimit
	}
	if limit > maxTxnLimit {
		limit = maxTxnLimit
	}

	var (
		txns []domain.Transaction
		next *string
		err  error
	)
	if params.AccountID != "" {
		txns, next, err = s.txnRepo.ListTransactionsByAccount(ctx, params.AccountID, limit, params.NextToken)
	} else {
		txns, next, err = s.txnRepo.ListTransactions(ctx, limit, params.NextToken)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

// inTx runs fn inside one database transaction and commits only if fn returns
// nil. Everything a Record* call mutates goes through here.
func (s *transactionService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.holdingRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.holdingRepo.Rollback(ctx, tx)
	}()

	if err := fn(tx); err != nil {
		return asConflict(err)
	}
	if err := s.holdingRepo.Commit(ctx, tx); err != nil {
		return asConflict(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// asConflict surfaces Postgres aborts a caller can resolve by retrying the
// whole operation. Opposing recorders locking the same holdings rows in
// opposite order end up here when Postgres kills the deadlock victim.
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message)
		}
	}
	return err
}
