package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
	"github.com/statementdesk/bank_recon_app/internal/platform/config"
)

// Services bundles the service facades the HTTP layer depends on.
type Services struct {
	Statement   ports.StatementSvcFacade
	Transaction ports.TransactionSvcFacade
	Reporting   ports.ReportingSvcFacade
	User        ports.UserSvcFacade
}

// RegisterValidations installs custom binding validators. Must run before any
// request binding uses the "transactionstatus" tag.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transactionstatus", func(fl validator.FieldLevel) bool {
			return domain.TransactionStatus(fl.Field().String()).Valid()
		})
	}
}

// RegisterRoutes sets up all application routes. Everything under /api/v1
// requires a Bearer token; the import route is additionally rate limited.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services Services, importRateLimit gin.HandlerFunc) {
	r.GET("/health", getHealth)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerImportRoutes(v1, services.Statement, importRateLimit)
	registerStatementRoutes(v1, services.Statement)
	registerTransactionRoutes(v1, services.Transaction, services.Reporting)
	registerUserRoutes(v1, services.User, services.Reporting)
}
