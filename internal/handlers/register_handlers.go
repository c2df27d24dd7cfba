package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cryptofolio/ledgerd/internal/core/domain"
	portssvc "github.com/cryptofolio/ledgerd/internal/core/ports/services"
	"github.com/cryptofolio/ledgerd/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, services.Currency)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerAccountRoutes(v1, services.Account)
	registerHoldingRoutes(v1, services.Holding, services.Currency)
	registerTransactionRoutes(v1, services.Transaction, services.Currency)
	registerPortfolioRoutes(v1, services.Portfolio, services.Currency)
}

// registerCustomValidators teaches the binding validator the enum tags used by
// the request DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("assetclass", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseAssetClass(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseAccountType(fl.Field().String())
		return ok
	})
}
