package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/statementdesk/bank_recon_app/internal/core/domain"
)

// UpdateTransactionRequest is the typed patch accepted by
// PATCH /transactions/:transactionID. Only the listed fields are recognized;
// unknown JSON fields are rejected at binding time. ProcessedAt is accepted for
// wire compatibility with older clients but ignored: completion always stamps
// the server clock.
type UpdateTransactionRequest struct {
	AssignedTo  *string    `json:"assignedTo"`
	Status      *string    `json:"status" binding:"omitempty,transactionstatus"`
	UserNotes   *string    `json:"userNotes"`
	ProcessedAt *time.Time `json:"processedAt"`
}

// ListTransactionsParams holds the optional month/year filter for the master
// list. The filter only applies when both values are present.
type ListTransactionsParams struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  *int `form:"year" binding:"omitempty,min=1000,max=9999"`
}

// AssigneeResponse is the minimal user projection embedded in transaction rows.
type AssigneeResponse struct {
	UserID    string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID   string            `json:"transactionID"`
	Date            time.Time         `json:"date"`
	Number          string            `json:"number"`
	Description     string            `json:"description"`
	Debit           decimal.Decimal   `json:"debit"`
	Credit          decimal.Decimal   `json:"credit"`
	Notes           string            `json:"notes"`
	UserNotes       *string           `json:"userNotes,omitempty"`
	ImportedAt      time.Time         `json:"importedAt"`
	ProcessedAt     *time.Time        `json:"processedAt,omitempty"`
	Status          string            `json:"status"`
	AssignedTo      *string           `json:"assignedTo,omitempty"`
	BankStatementID string            `json:"bankStatementID"`
	Assignee        *AssigneeResponse `json:"assignee,omitempty"`
}

// ListTransactionsResponse wraps the transaction list payload.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionDetailResponse wraps a single transaction payload.
type TransactionDetailResponse struct {
	Transaction TransactionResponse `json:"transaction"`
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   t.TransactionID,
		Date:            t.Date,
		Number:          t.Number,
		Description:     t.Description,
		Debit:           t.Debit,
		Credit:          t.Credit,
		Notes:           t.Notes,
		UserNotes:       t.UserNotes,
		ImportedAt:      t.ImportedAt,
		ProcessedAt:     t.ProcessedAt,
		Status:          string(t.Status),
		AssignedTo:      t.AssignedTo,
		BankStatementID: t.BankStatementID,
	}
	if t.Assignee != nil {
		resp.Assignee = &AssigneeResponse{
			UserID:    t.Assignee.UserID,
			FirstName: t.Assignee.FirstName,
			LastName:  t.Assignee.LastName,
		}
	}
	return resp
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
