package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	income := &Transaction{Type: TransactionIncome, Amount: decimal.RequireFromString("150.25")}
	assert.Equal(t, "150.25", income.SignedAmount().StringFixed(2))

	expense := &Transaction{Type: TransactionExpense, Amount: decimal.RequireFromString("40.5")}
	assert.Equal(t, "-40.50", expense.SignedAmount().StringFixed(2))
}

func TestTransaction_IsPending(t *testing.T) {
	assert.True(t, (&Transaction{Status: StatusPending}).IsPending())
	assert.False(t, (&Transaction{Status: StatusApproved}).IsPending())
	assert.False(t, (&Transaction{Status: StatusRejected}).IsPending())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsDecision(StatusApproved))
	assert.True(t, IsDecision(StatusRejected))
	assert.False(t, IsDecision(StatusPending))
	assert.False(t, IsDecision("approved"))

	assert.True(t, IsValidTransactionType(TransactionIncome))
	assert.False(t, IsValidTransactionType("TRANSFER"))

	assert.True(t, IsValidPlanStatus(PlanStatusOverdue))
	assert.False(t, IsValidPlanStatus(StatusApproved))

	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("owner"))
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
