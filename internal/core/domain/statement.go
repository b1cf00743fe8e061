package domain

import "time"

// Statement represents one imported bank statement file, grouping the
// transactions created from it. Statements are created once per successful
// import and never mutated afterwards.
type Statement struct {
	StatementID   string    `json:"statementID"` // Primary Key (UUID)
	StatementDate time.Time `json:"statementDate"`
	FileName      string    `json:"fileName"`
	ImportedAt    time.Time `json:"importedAt"`

	// TransactionCount is populated by list queries.
	TransactionCount int `json:"transactionCount,omitempty"`
}
