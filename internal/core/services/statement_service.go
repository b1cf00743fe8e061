package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/importer"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
)

// dateLayouts are the post-date formats accepted from uploaded statements, in
// the order they are tried.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

type StatementService struct {
	statementRepo ports.StatementRepository
}

func NewStatementService(statementRepo ports.StatementRepository) *StatementService {
	return &StatementService{statementRepo: statementRepo}
}

// Ensure StatementService implements the facade
var _ ports.StatementSvcFacade = (*StatementService)(nil)

// ImportStatement parses an uploaded spreadsheet and persists one statement
// with all of its transactions atomically. Every row is validated before the
// first write, so a bad row aborts the import with nothing persisted.
func (s *StatementService) ImportStatement(ctx context.Context, data []byte, fileName string) (*domain.Statement, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := importer.Parse(data, fileName)
	if err != nil {
		return nil, 0, err
	}

	// The statement is dated by the post date of its first data row.
	statementDate, err := parseRowDate(rows[0].PostDate)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: first row post date %q", apperrors.ErrInvalidStatementDate, rows[0].PostDate)
	}

	now := time.Now().UTC()
	statement := domain.Statement{
		StatementID:      uuid.NewString(),
		StatementDate:    statementDate,
		FileName:         fileName,
		ImportedAt:       now,
		TransactionCount: len(rows),
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := parseRowDate(row.PostDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: row %d post date %q", apperrors.ErrValidation, i+1, row.PostDate)
		}
		transactions = append(transactions, domain.Transaction{
			TransactionID:   uuid.NewString(),
			Date:            date,
			Number:          row.Number,
			Description:     row.Description,
			Debit:           row.Debit,
			Credit:          row.Credit,
			Notes:           "",
			ImportedAt:      now,
			Status:          domain.StatusUnassigned,
			BankStatementID: statement.StatementID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	if err := s.statementRepo.SaveStatement(ctx, statement, transactions); err != nil {
		logger.Error("Failed to persist imported statement",
			slog.String("file_name", fileName),
			slog.Int("transaction_count", len(transactions)),
			slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to save statement: %w", err)
	}

	logger.Info("Statement imported",
		slog.String("statement_id", statement.StatementID),
		slog.String("file_name", fileName),
		slog.Int("transaction_count", len(transactions)))

	return &statement, len(transactions), nil
}

func (s *StatementService) GetStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	if statementID == "" {
		return nil, fmt.Errorf("%w: statement ID is required", apperrors.ErrMissingParameter)
	}
	return s.statementRepo.FindStatementByID(ctx, statementID)
}

func (s *StatementService) ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error) {
	return s.statementRepo.FindStatements(ctx, limit, offset)
}

// parseRowDate parses a post-date cell, trying each accepted layout. Parsed
// dates are anchored to UTC.
func parseRowDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
