package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cryptofolio/ledgerd/internal/apperrors"
	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portsrepo "github.com/cryptofolio/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/internal/dto"
	"github.com/cryptofolio/ledgerd/internal/middleware"
)

// currencyService manages the currency catalog.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency catalog service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) RegisterCurrency(ctx context.Context, req dto.RegisterCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assetClass, ok := domain.ParseAssetClass(req.AssetClass)
	if !ok {
		return nil, fmt.Errorf("%w: unknown asset class %q", apperrors.ErrValidation, req.AssetClass)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		Code:       strings.ToUpper(req.Code),
		Name:       req.Name,
		Symbol:     req.Symbol,
		Precision:  req.Precision,
		AssetClass: assetClass,
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("currency %s: %w", currency.Code, apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save currency", slog.String("code", currency.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency %s: %w", currency.Code, err)
	}

	logger.Info("Currency registered", slog.String("code", currency.Code), slog.String("asset_class", string(assetClass)))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, params dto.ListCurrenciesParams) ([]domain.Currency, error) {
	filter := portsrepo.CurrencyListFilter{EnabledOnly: params.EnabledOnly}
	if params.AssetClass != "" {
		assetClass, ok := domain.ParseAssetClass(params.AssetClass)
		if !ok {
			return nil, fmt.Errorf("%w: unknown asset class %q", apperrors.ErrValidation, params.AssetClass)
		}
		filter.AssetClass = &assetClass
	}

	currencies, err := s.currencyRepo.ListCurrencies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	currency.Name = req.Name
	currency.Symbol = req.Symbol
	currency.Precision = req.Precision
	currency.UpdatedAt = time.Now().UTC()

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		logger.Error("Failed to update currency", slog.String("code", currency.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update currency %s: %w", currency.Code, err)
	}

	logger.Info("Currency updated", slog.String("code", currency.Code))
	return currency, nil
}

func (s *currencyService) SetCurrencyEnabled(ctx context.Context, currencyCode string, enabled bool) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(currencyCode)
	if err := s.currencyRepo.SetCurrencyEnabled(ctx, code, enabled); err != nil {
		return nil, fmt.Errorf("failed to set enabled for currency %s: %w", code, err)
	}

	logger.Info("Currency enabled flag set", slog.String("code", code), slog.Bool("enabled", enabled))
	return s.GetCurrencyByCode(ctx, code)
}
