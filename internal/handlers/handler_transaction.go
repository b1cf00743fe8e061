package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
)

// transactionHandler handles HTTP requests for the transaction master list and
// lifecycle updates.
type transactionHandler struct {
	transactionService ports.TransactionSvcFacade
	reportingService   ports.ReportingSvcFacade
}

func newTransactionHandler(transactionService ports.TransactionSvcFacade, reportingService ports.ReportingSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
		reportingService:   reportingService,
	}
}

// listTransactions returns the master list, optionally filtered to one
// calendar month when both month and year query parameters are present.
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid transaction list query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year parameter"})
		return
	}

	transactions, err := h.reportingService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(transactions)})
}

// getTransaction returns a single transaction with its assignee projection.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionDetailResponse{Transaction: dto.ToTransactionResponse(txn)})
}

// patchTransaction applies a typed patch: grabbing, note edits, and
// completion. The authenticated caller is the acting user; assigning to anyone
// else is rejected.
func (h *transactionHandler) patchTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction patch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		respondTransactionError(c, logger.With(slog.String("transaction_id", transactionID)), err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionDetailResponse{Transaction: dto.ToTransactionResponse(txn)})
}

// respondTransactionError maps lifecycle errors to HTTP status codes. Grab
// races and illegal transitions are conflicts, assignee violations are
// forbidden, everything unexpected is a 500 with a generic body.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrAlreadyAssigned):
		logger.Warn("Grab lost to a concurrent assignment", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction is already assigned"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Illegal status transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotAssignee):
		logger.Warn("Caller is not the assignee", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Transaction is assigned to another user"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMissingParameter):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Transaction operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// registerTransactionRoutes registers the transaction list and item routes.
func registerTransactionRoutes(group *gin.RouterGroup, transactionService ports.TransactionSvcFacade, reportingService ports.ReportingSvcFacade) {
	h := newTransactionHandler(transactionService, reportingService)

	txns := group.Group("/transactions")
	txns.GET("", h.listTransactions)
	txns.GET("/:transactionID", h.getTransaction)
	txns.PATCH("/:transactionID", h.patchTransaction)
}
