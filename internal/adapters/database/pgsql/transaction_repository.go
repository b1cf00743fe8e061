package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
)

const transactionColumns = `transaction_id, date, number, description, debit, credit, notes, user_notes, imported_at, processed_at, status, assigned_to, bank_statement_id, created_at, updated_at`

type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction reads and
// lifecycle updates.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Ensure TransactionRepository implements ports.TransactionRepository
var _ ports.TransactionRepository = (*TransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Date,
		&txn.Number,
		&txn.Description,
		&txn.Debit,
		&txn.Credit,
		&txn.Notes,
		&txn.UserNotes,
		&txn.ImportedAt,
		&txn.ProcessedAt,
		&txn.Status,
		&txn.AssignedTo,
		&txn.BankStatementID,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByID retrieves a transaction with its assignee projection.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.date, t.number, t.description, t.debit, t.credit, t.notes, t.user_notes, t.imported_at, t.processed_at, t.status, t.assigned_to, t.bank_statement_id, t.created_at, t.updated_at,
		       u.user_id, u.first_name, u.last_name
		FROM transactions t
		LEFT JOIN users u ON u.user_id = t.assigned_to
		WHERE t.transaction_id = $1;
	`
	var txn domain.Transaction
	var assigneeID, assigneeFirst, assigneeLast *string
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&txn.TransactionID,
		&txn.Date,
		&txn.Number,
		&txn.Description,
		&txn.Debit,
		&txn.Credit,
		&txn.Notes,
		&txn.UserNotes,
		&txn.ImportedAt,
		&txn.ProcessedAt,
		&txn.Status,
		&txn.AssignedTo,
		&txn.BankStatementID,
		&txn.CreatedAt,
		&txn.UpdatedAt,
		&assigneeID,
		&assigneeFirst,
		&assigneeLast,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	if assigneeID != nil {
		txn.Assignee = &domain.Assignee{UserID: *assigneeID, FirstName: deref(assigneeFirst), LastName: deref(assigneeLast)}
	}
	return &txn, nil
}

// ListTransactions retrieves transactions ordered by ascending id, each joined
// with its assignee projection. A non-nil filter limits rows to the half-open
// window [From, To).
func (r *TransactionRepository) ListTransactions(ctx context.Context, filter *ports.TransactionFilter) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.date, t.number, t.description, t.debit, t.credit, t.notes, t.user_notes, t.imported_at, t.processed_at, t.status, t.assigned_to, t.bank_statement_id, t.created_at, t.updated_at,
		       u.user_id, u.first_name, u.last_name
		FROM transactions t
		LEFT JOIN users u ON u.user_id = t.assigned_to
	`
	args := []any{}
	if filter != nil {
		query += ` WHERE t.date >= $1 AND t.date < $2`
		args = append(args, filter.From, filter.To)
	}
	query += ` ORDER BY t.transaction_id ASC;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var assigneeID, assigneeFirst, assigneeLast *string
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.Date,
			&txn.Number,
			&txn.Description,
			&txn.Debit,
			&txn.Credit,
			&txn.Notes,
			&txn.UserNotes,
			&txn.ImportedAt,
			&txn.ProcessedAt,
			&txn.Status,
			&txn.AssignedTo,
			&txn.BankStatementID,
			&txn.CreatedAt,
			&txn.UpdatedAt,
			&assigneeID,
			&assigneeFirst,
			&assigneeLast,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		if assigneeID != nil {
			txn.Assignee = &domain.Assignee{UserID: *assigneeID, FirstName: deref(assigneeFirst), LastName: deref(assigneeLast)}
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// ListTransactionsByAssignee retrieves transactions assigned to userID,
// ordered by ascending id.
func (r *TransactionRepository) ListTransactionsByAssignee(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE assigned_to = $1
		ORDER BY transaction_id ASC;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for assignee %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for assignee %s: %w", userID, err)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for assignee %s: %w", userID, err)
	}

	return transactions, nil
}

// ClaimTransaction atomically assigns an unassigned transaction to userID.
// The status guard lives in the WHERE clause: of two concurrent claims exactly
// one matches the unassigned row, and the loser is classified against the
// row's current state. A read-then-write claim split across two round trips
// would race and is deliberately not offered.
func (r *TransactionRepository) ClaimTransaction(ctx context.Context, transactionID string, userID string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET assigned_to = $2, status = 'in_progress', updated_at = $3
		WHERE transaction_id = $1 AND status = 'unassigned'
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID, userID, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyClaimFailure(ctx, transactionID)
		}
		return nil, fmt.Errorf("failed to claim transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// UpdateUserNotes sets the caseworker notes on an in-progress transaction
// owned by userID. The assignee guard is part of the conditional update.
func (r *TransactionRepository) UpdateUserNotes(ctx context.Context, transactionID string, userID string, notes string, now time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET user_notes = $3, updated_at = $4
		WHERE transaction_id = $1 AND assigned_to = $2 AND status = 'in_progress'
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID, userID, notes, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyAssigneeFailure(ctx, transactionID, userID)
		}
		return nil, fmt.Errorf("failed to update notes on transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// CompleteTransaction moves an in-progress transaction owned by userID to
// completed, stamping processedAt exactly once.
func (r *TransactionRepository) CompleteTransaction(ctx context.Context, transactionID string, userID string, processedAt time.Time) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = 'completed', processed_at = $3, updated_at = $3
		WHERE transaction_id = $1 AND assigned_to = $2 AND status = 'in_progress'
		RETURNING ` + transactionColumns + `;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID, userID, processedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyAssigneeFailure(ctx, transactionID, userID)
		}
		return nil, fmt.Errorf("failed to complete transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// currentClaimState fetches the status and assignee of a transaction after a
// conditional update matched no rows, so the failure can be reported precisely.
func (r *TransactionRepository) currentClaimState(ctx context.Context, transactionID string) (domain.TransactionStatus, *string, error) {
	var status domain.TransactionStatus
	var assignedTo *string
	err := r.pool.QueryRow(ctx, `SELECT status, assigned_to FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&status, &assignedTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to inspect transaction %s: %w", transactionID, err)
	}
	return status, assignedTo, nil
}

func (r *TransactionRepository) classifyClaimFailure(ctx context.Context, transactionID string) error {
	status, _, err := r.currentClaimState(ctx, transactionID)
	if err != nil {
		return err
	}
	if status == domain.StatusCompleted {
		return apperrors.ErrInvalidTransition
	}
	return apperrors.ErrAlreadyAssigned
}

func (r *TransactionRepository) classifyAssigneeFailure(ctx context.Context, transactionID string, userID string) error {
	status, assignedTo, err := r.currentClaimState(ctx, transactionID)
	if err != nil {
		return err
	}
	if status != domain.StatusInProgress {
		return apperrors.ErrInvalidTransition
	}
	if assignedTo == nil || *assignedTo != userID {
		return apperrors.ErrNotAssignee
	}
	// In-progress and owned by the caller yet the update matched nothing:
	// the row changed between the update and this read.
	return apperrors.ErrInternal
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
