package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// exchangeRateService manages the directional rate history.
type exchangeRateService struct {
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, currencySvc: currencySvc}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) RecordRate(ctx context.Context, req dto.RecordExchangeRateRequest) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency must differ", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	for _, code := range []string{from, to} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			return nil, fmt.Errorf("currency %s: %w", code, err)
		}
	}

	now := time.Now().UTC()
	timestamp := now
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		Timestamp:        timestamp,
		Source:           domain.RateSourceManual,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// The upsert returns the surviving row id, which differs from the
	// generated one when this write replaced an earlier observation.
	id, err := s.rateRepo.UpsertExchangeRate(ctx, rate)
	if err != nil {
		logger.Error("Failed to upsert exchange rate", slog.String("pair", rate.Pair()), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to upsert rate %s: %w", rate.Pair(), err)
	}
	rate.ExchangeRateID = id

	logger.Info("Exchange rate recorded", slog.String("pair", rate.Pair()), slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

func (s *exchangeRateService) GetLatestRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindLatestRate(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find latest rate %s/%s: %w", fromCode, toCode, err)
	}
	return rate, nil
}

func (s *exchangeRateService) GetRateAsOf(ctx context.Context, fromCode, toCode string, at time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateAsOf(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode), at)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate %s/%s as of %s: %w", fromCode, toCode, at.Format(time.RFC3339), err)
	}
	return rate, nil
}

func (s *exchangeRateService) GetRateHistory(ctx context.Context, fromCode, toCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rates, next, err := s.rateRepo.ListRateHistory(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode), limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list rate history %s/%s: %w", fromCode, toCode, err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, next, nil
}
