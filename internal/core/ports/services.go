package ports

import (
	"context"

	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/dto"
)

// StatementSvcFacade is the import pipeline plus statement reads.
type StatementSvcFacade interface {
	// ImportStatement parses raw spreadsheet bytes and atomically persists one
	// statement with its transactions, returning the statement and row count.
	ImportStatement(ctx context.Context, data []byte, fileName string) (*domain.Statement, int, error)
	GetStatementByID(ctx context.Context, statementID string) (*domain.Statement, error)
	ListStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error)
}

// TransactionSvcFacade owns the transaction lifecycle state machine.
type TransactionSvcFacade interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	GrabTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
	UpdateUserNotes(ctx context.Context, transactionID string, notes string, userID string) (*domain.Transaction, error)
	CompleteTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// UpdateTransaction interprets a typed patch request and dispatches to the
	// lifecycle operations above.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)
}

// ReportingSvcFacade answers the read-side list queries.
type ReportingSvcFacade interface {
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	ListAssignedTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// UserSvcFacade resolves caseworker reference data.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}
