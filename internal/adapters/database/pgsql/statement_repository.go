package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/statementdesk/bank_recon_app/internal/apperrors"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/statementdesk/bank_recon_app/internal/core/ports"
)

type StatementRepository struct {
	pool *pgxpool.Pool
}

// NewStatementRepository creates a new repository for statement and bulk
// transaction persistence.
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{pool: pool}
}

// Ensure StatementRepository implements ports.StatementRepository
var _ ports.StatementRepository = (*StatementRepository)(nil)

// SaveStatement saves a statement and its transactions within a DB
// transaction. The statement insert is ordered before the batch so every
// transaction row has a valid foreign-key target; if anything fails, nothing
// persists.
func (r *StatementRepository) SaveStatement(ctx context.Context, statement domain.Statement, transactions []domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	statementQuery := `
		INSERT INTO statements (statement_id, statement_date, file_name, imported_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, statementQuery,
		statement.StatementID,
		statement.StatementDate,
		statement.FileName,
		statement.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement %s: %w", statement.StatementID, err)
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (transaction_id, date, number, description, debit, credit, notes, user_notes, imported_at, processed_at, status, assigned_to, bank_statement_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	for _, txn := range transactions {
		batch.Queue(txnQuery,
			txn.TransactionID,
			txn.Date,
			txn.Number,
			txn.Description,
			txn.Debit,
			txn.Credit,
			txn.Notes,
			txn.UserNotes,
			txn.ImportedAt,
			txn.ProcessedAt,
			txn.Status,
			txn.AssignedTo,
			txn.BankStatementID,
			txn.CreatedAt,
			txn.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute transaction batch for statement %s: %w", statement.StatementID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit statement %s: %w", statement.StatementID, err)
	}

	return nil
}

// FindStatementByID retrieves a statement by its ID, including the count of
// transactions imported with it.
func (r *StatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.Statement, error) {
	query := `
		SELECT s.statement_id, s.statement_date, s.file_name, s.imported_at, COUNT(t.transaction_id)
		FROM statements s
		LEFT JOIN transactions t ON t.bank_statement_id = s.statement_id
		WHERE s.statement_id = $1
		GROUP BY s.statement_id;
	`
	var statement domain.Statement
	err := r.pool.QueryRow(ctx, query, statementID).Scan(
		&statement.StatementID,
		&statement.StatementDate,
		&statement.FileName,
		&statement.ImportedAt,
		&statement.TransactionCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement by ID %s: %w", statementID, err)
	}

	return &statement, nil
}

// FindStatements retrieves statements ordered by most recent import first.
func (r *StatementRepository) FindStatements(ctx context.Context, limit int, offset int) ([]domain.Statement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT s.statement_id, s.statement_date, s.file_name, s.imported_at, COUNT(t.transaction_id)
		FROM statements s
		LEFT JOIN transactions t ON t.bank_statement_id = s.statement_id
		GROUP BY s.statement_id
		ORDER BY s.imported_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	statements := []domain.Statement{}
	for rows.Next() {
		var statement domain.Statement
		if err := rows.Scan(
			&statement.StatementID,
			&statement.StatementDate,
			&statement.FileName,
			&statement.ImportedAt,
			&statement.TransactionCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		statements = append(statements, statement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}

	return statements, nil
}
