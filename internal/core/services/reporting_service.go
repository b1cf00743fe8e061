package services

import (
	"context"
	"fmt"
	"time"

	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
)

type ReportingService struct {
	transactionRepo ports.TransactionRepository
}

func NewReportingService(transactionRepo ports.TransactionRepository) *ReportingService {
	return &ReportingService{transactionRepo: transactionRepo}
}

// Ensure ReportingService implements the facade
var _ ports.ReportingSvcFacade = (*ReportingService)(nil)

// ListTransactions returns the master list. When both month and year are
// given, rows are restricted to that calendar month in UTC as a half-open
// window; a lone month or year is ignored.
func (s *ReportingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	var filter *ports.TransactionFilter
	if params.Month != nil && params.Year != nil {
		from := time.Date(*params.Year, time.Month(*params.Month), 1, 0, 0, 0, 0, time.UTC)
		filter = &ports.TransactionFilter{From: from, To: from.AddDate(0, 1, 0)}
	}
	return s.transactionRepo.ListTransactions(ctx, filter)
}

// ListAssignedTransactions returns the transactions currently assigned to
// userID, in both in-progress and completed states.
func (s *ReportingService) ListAssignedTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", apperrors.ErrMissingParameter)
	}
	return s.transactionRepo.ListTransactionsByAssignee(ctx, userID)
}
