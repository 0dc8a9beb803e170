package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromWire(t *testing.T) {
	assert.Equal(t, "in_progress", FromWire("IN_PROGRESS"))
	assert.Equal(t, "fixed_price", FromWire("FIXED_PRICE"))
	assert.Equal(t, "admin", FromWire("ADMIN"))
	assert.Equal(t, "", FromWire(""))
}

func TestToWire(t *testing.T) {
	assert.Equal(t, "IN_PROGRESS", ToWire("in_progress"))
	assert.Equal(t, "NON_BILLED", ToWire(BillingNonBilled))
}

// TestEnumRoundTrip verifies that writing a display value and normalizing
// the wire form it produces yields the original value, for every enum the
// boundary carries.
func TestEnumRoundTrip(t *testing.T) {
	values := []string{
		RoleAdmin, RoleManager, RoleEmployee,
		JobPending, JobInProgress, JobOnHold, JobCompleted, JobCancelled,
		TaskTodo, TaskInProgress, TaskDone,
		TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetRejected,
		PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
		BillingFixedPrice, BillingHourly, BillingNonBilled,
		InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue,
	}

	for _, v := range values {
		assert.Equal(t, v, FromWire(ToWire(v)), "round trip for %q", v)
	}
}

func TestUserIsManager(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsManager())
	assert.True(t, User{Role: RoleManager}.IsManager())
	assert.False(t, User{Role: RoleEmployee}.IsManager())
}
