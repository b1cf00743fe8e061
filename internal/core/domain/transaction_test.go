package domain_test

import (
	"testing"

	"github.com/statementdesk/bank_recon_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatusValid(t *testing.T) {
	assert.True(t, domain.StatusUnassigned.Valid())
	assert.True(t, domain.StatusInProgress.Valid())
	assert.True(t, domain.StatusCompleted.Valid())
	assert.False(t, domain.TransactionStatus("archived").Valid())
	assert.False(t, domain.TransactionStatus("").Valid())
}

func TestTransactionStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{"grab", domain.StatusUnassigned, domain.StatusInProgress, true},
		{"complete", domain.StatusInProgress, domain.StatusCompleted, true},
		{"skip straight to completed", domain.StatusUnassigned, domain.StatusCompleted, false},
		{"release back to unassigned", domain.StatusInProgress, domain.StatusUnassigned, false},
		{"completed is terminal", domain.StatusCompleted, domain.StatusInProgress, false},
		{"completed cannot repeat", domain.StatusCompleted, domain.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
