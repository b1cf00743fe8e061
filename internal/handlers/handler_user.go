package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
)

// userHandler handles caseworker reference reads and per-user workload views.
type userHandler struct {
	userService      ports.UserSvcFacade
	reportingService ports.ReportingSvcFacade
}

func newUserHandler(userService ports.UserSvcFacade, reportingService ports.ReportingSvcFacade) *userHandler {
	return &userHandler{
		userService:      userService,
		reportingService: reportingService,
	}
}

func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := parseListParams(c)
	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.ListUsersResponse{Users: dto.ToUserResponses(users)})
}

func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user", slog.String("user_id", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listAssignedTransactions returns the transactions a caseworker currently
// holds, both in progress and completed.
func (h *userHandler) listAssignedTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	transactions, err := h.reportingService.ListAssignedTransactions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list assigned transactions", slog.String("user_id", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assigned transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(transactions)})
}

// parseListParams reads limit/offset pagination query parameters with
// defaults.
func parseListParams(c *gin.Context) (limit int, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// registerUserRoutes registers the user reference routes and the per-user
// assigned-transactions view.
func registerUserRoutes(group *gin.RouterGroup, userService ports.UserSvcFacade, reportingService ports.ReportingSvcFacade) {
	h := newUserHandler(userService, reportingService)

	users := group.Group("/users")
	users.GET("", h.listUsers)
	users.GET("/:userID", h.getUser)
	users.GET("/:userID/transactions", h.listAssignedTransactions)
}
