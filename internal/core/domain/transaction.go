package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of an imported bank transaction.
type TransactionStatus string

const (
	StatusUnassigned TransactionStatus = "unassigned"
	StatusInProgress TransactionStatus = "in_progress"
	StatusCompleted  TransactionStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusUnassigned, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Completed is terminal.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case StatusUnassigned:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// Assignee is the minimal projection of the user a transaction is assigned to,
// used when rendering the master list.
type Assignee struct {
	UserID    string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Transaction represents one ledger line from an imported bank statement.
// Invariants: AssignedTo is non-nil iff Status != unassigned; ProcessedAt is
// non-nil iff Status == completed.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	Date            time.Time         `json:"date"`
	Number          string            `json:"number"` // Check/reference number, may be empty
	Description     string            `json:"description"`
	Debit           decimal.Decimal   `json:"debit"`
	Credit          decimal.Decimal   `json:"credit"`
	Notes           string            `json:"notes"`     // Imported, read-only
	UserNotes       *string           `json:"userNotes"` // Caseworker-editable
	ImportedAt      time.Time         `json:"importedAt"`
	ProcessedAt     *time.Time        `json:"processedAt"`
	Status          TransactionStatus `json:"status"`
	AssignedTo      *string           `json:"assignedTo"`      // FK -> User.UserID
	BankStatementID string            `json:"bankStatementID"` // FK -> Statement.StatementID (Not Null)
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	// Assignee is populated by list queries that join the users table.
	Assignee *Assignee `json:"assignee,omitempty"`
}
