package dto

import (
	"time"

	"github.com/statementdesk/bank_recon_app/internal/core/domain"
)

// ImportStatementResponse is returned by POST /import.
type ImportStatementResponse struct {
	StatementID      string `json:"statementID"`
	TransactionCount int    `json:"transactionCount"`
}

// StatementResponse is the API representation of an imported statement.
type StatementResponse struct {
	StatementID      string    `json:"statementID"`
	StatementDate    time.Time `json:"statementDate"`
	FileName         string    `json:"fileName"`
	ImportedAt       time.Time `json:"importedAt"`
	TransactionCount int       `json:"transactionCount"`
}

// ListStatementsResponse wraps the statement list payload.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
}

// ToStatementResponse maps a domain statement to its API representation.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID:      s.StatementID,
		StatementDate:    s.StatementDate,
		FileName:         s.FileName,
		ImportedAt:       s.ImportedAt,
		TransactionCount: s.TransactionCount,
	}
}

// ToStatementResponses maps a slice of domain statements.
func ToStatementResponses(statements []domain.Statement) []StatementResponse {
	responses := make([]StatementResponse, len(statements))
	for i := range statements {
		responses[i] = ToStatementResponse(&statements[i])
	}
	return responses
}
