package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
)

// statementHandler handles statement import and statement reads.
type statementHandler struct {
	statementService ports.StatementSvcFacade
}

func newStatementHandler(statementService ports.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: statementService}
}

// importStatement accepts a multipart spreadsheet upload under the "file"
// field and persists it as one statement with its transactions. The import is
// all-or-nothing; any bad row rejects the whole file.
func (h *statementHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Import request missing file field", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A statement file is required under the 'file' field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warn("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file could not be read"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	statement, count, err := h.statementService.ImportStatement(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmptyDocument),
			errors.Is(err, apperrors.ErrInvalidDocument),
			errors.Is(err, apperrors.ErrInvalidStatementDate),
			errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected statement upload", slog.String("file_name", fileHeader.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to import statement", slog.String("file_name", fileHeader.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import statement"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ImportStatementResponse{
		StatementID:      statement.StatementID,
		TransactionCount: count,
	})
}

// listStatements returns imported statements, most recent first.
func (h *statementHandler) listStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := parseListParams(c)
	statements, err := h.statementService.ListStatements(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statements"})
		return
	}

	c.JSON(http.StatusOK, dto.ListStatementsResponse{Statements: dto.ToStatementResponses(statements)})
}

// getStatement returns one statement with its transaction count.
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	statementID := c.Param("statementID")

	statement, err := h.statementService.GetStatementByID(c.Request.Context(), statementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
			return
		}
		logger.Error("Failed to get statement", slog.String("statement_id", statementID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// registerImportRoutes registers the rate-limited upload route.
func registerImportRoutes(group *gin.RouterGroup, statementService ports.StatementSvcFacade, rateLimit gin.HandlerFunc) {
	h := newStatementHandler(statementService)
	group.POST("/import", rateLimit, h.importStatement)
}

// registerStatementRoutes registers the statement read routes.
func registerStatementRoutes(group *gin.RouterGroup, statementService ports.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	statements := group.Group("/statements")
	statements.GET("", h.listStatements)
	statements.GET("/:statementID", h.getStatement)
}
