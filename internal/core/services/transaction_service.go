package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
	"github.com/statementdesk/bank_recon_app/internal/dto"
	"github.com/statementdesk/bank_recon_app/internal/middleware"
)

type TransactionService struct {
	transactionRepo ports.TransactionRepository
}

func NewTransactionService(transactionRepo ports.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// Ensure TransactionService implements the facade
var _ ports.TransactionSvcFacade = (*TransactionService)(nil)

func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction ID is required", apperrors.ErrMissingParameter)
	}
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

// GrabTransaction claims an unassigned transaction for userID. The claim is a
// single conditional update in the repository, so two concurrent grabs resolve
// to exactly one winner.
func (s *TransactionService) GrabTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	if transactionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: transaction ID and user ID are required", apperrors.ErrMissingParameter)
	}

	txn, err := s.transactionRepo.ClaimTransaction(ctx, transactionID, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction grabbed",
		slog.String("transaction_id", transactionID),
		slog.String("assigned_to", userID))
	return txn, nil
}

// UpdateUserNotes sets caseworker notes on a transaction the caller currently
// holds in progress.
func (s *TransactionService) UpdateUserNotes(ctx context.Context, transactionID string, notes string, userID string) (*domain.Transaction, error) {
	if transactionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: transaction ID and user ID are required", apperrors.ErrMissingParameter)
	}
	return s.transactionRepo.UpdateUserNotes(ctx, transactionID, userID, notes, time.Now().UTC())
}

// CompleteTransaction finishes an in-progress transaction held by the caller.
// The processed timestamp is always the server clock.
func (s *TransactionService) CompleteTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	if transactionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: transaction ID and user ID are required", apperrors.ErrMissingParameter)
	}

	txn, err := s.transactionRepo.CompleteTransaction(ctx, transactionID, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction completed",
		slog.String("transaction_id", transactionID),
		slog.String("completed_by", userID))
	return txn, nil
}

// UpdateTransaction interprets a typed patch and dispatches to the lifecycle
// operations. Assigning to anyone other than the caller is rejected; a patch
// that names no recognized mutation is rejected as well. ProcessedAt in the
// request is ignored; completion stamps the server clock.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.AssignedTo != nil && *req.AssignedTo != userID {
		return nil, fmt.Errorf("%w: transactions can only be assigned to the requesting user", apperrors.ErrValidation)
	}

	if req.Status != nil {
		switch domain.TransactionStatus(*req.Status) {
		case domain.StatusInProgress:
			txn, err := s.GrabTransaction(ctx, transactionID, userID)
			if err != nil {
				return nil, err
			}
			if req.UserNotes != nil {
				return s.UpdateUserNotes(ctx, transactionID, *req.UserNotes, userID)
			}
			return txn, nil

		case domain.StatusCompleted:
			if req.UserNotes != nil {
				if _, err := s.UpdateUserNotes(ctx, transactionID, *req.UserNotes, userID); err != nil {
					return nil, err
				}
			}
			return s.CompleteTransaction(ctx, transactionID, userID)

		default:
			// Unassigning is not offered; the lifecycle only moves forward.
			return nil, fmt.Errorf("%w: cannot move a transaction to %s", apperrors.ErrInvalidTransition, *req.Status)
		}
	}

	if req.AssignedTo != nil {
		// Assignment without an explicit status is shorthand for grabbing.
		txn, err := s.GrabTransaction(ctx, transactionID, userID)
		if err != nil {
			return nil, err
		}
		if req.UserNotes != nil {
			return s.UpdateUserNotes(ctx, transactionID, *req.UserNotes, userID)
		}
		return txn, nil
	}

	if req.UserNotes != nil {
		return s.UpdateUserNotes(ctx, transactionID, *req.UserNotes, userID)
	}

	return nil, fmt.Errorf("%w: no updatable fields in request", apperrors.ErrValidation)
}
