package ports

import (
	"context"
	"time"

	"github.com/statementdesk/bank_recon_app/internal/core/domain"
)

// TransactionFilter limits a transaction listing to the half-open window
// [From, To). A nil filter means no date restriction.
type TransactionFilter struct {
	From time.Time
	To   time.Time
}

// StatementRepository persists imported statements and their transactions.
type StatementRepository interface {
	// SaveStatement writes the statement and all of its transactions within a
	// single database transaction; the import is all-or-nothing.
	SaveStatement(ctx context.Context, statement domain.Statement, transactions []domain.Transaction) error
	FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error)
	FindStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error)
}

// TransactionRepository provides reads and conditional lifecycle updates over
// transactions. The three mutation methods are compare-and-set operations: the
// status/assignee guard lives in the UPDATE's WHERE clause, never in
// application code, so concurrent callers cannot overwrite each other.
type TransactionRepository interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter *TransactionFilter) ([]domain.Transaction, error)
	ListTransactionsByAssignee(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ClaimTransaction assigns an unassigned transaction to userID. Exactly one
	// of two concurrent claims succeeds; the loser gets apperrors.ErrAlreadyAssigned.
	ClaimTransaction(ctx context.Context, transactionID string, userID string, now time.Time) (*domain.Transaction, error)

	// UpdateUserNotes sets the caseworker notes; the caller must be the current
	// assignee of an in-progress transaction.
	UpdateUserNotes(ctx context.Context, transactionID string, userID string, notes string, now time.Time) (*domain.Transaction, error)

	// CompleteTransaction moves an in-progress transaction owned by userID to
	// completed, stamping processedAt.
	CompleteTransaction(ctx context.Context, transactionID string, userID string, processedAt time.Time) (*domain.Transaction, error)
}

// UserRepository provides read-only access to the caseworker reference table.
type UserRepository interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}
