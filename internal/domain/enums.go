package domain

import "strings"

// Role values for User.Role.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// JobStatus values for Job.Status.
const (
	JobPending    = "pending"
	JobInProgress = "in_progress"
	JobOnHold     = "on_hold"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// TaskStatus values for Task.Status.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// TimesheetStatus values for Timesheet.Status.
const (
	TimesheetDraft     = "draft"
	TimesheetSubmitted = "submitted"
	TimesheetApproved  = "approved"
	TimesheetRejected  = "rejected"
)

// Priority values for Job.Priority and Task.Priority.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// BillingType values for Job.BillingType.
const (
	BillingFixedPrice = "fixed_price"
	BillingHourly     = "hourly"
	BillingNonBilled  = "non_billed"
)

// InvoiceStatus values for Invoice.Status.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// FromWire normalizes a backend enum value to its lower_snake display form.
// Every enum-bearing field crossing the API boundary goes through this on
// read; the wire and display forms differ only in case.
func FromWire(s string) string {
	return strings.ToLower(s)
}

// ToWire converts a display enum value to the UPPER_SNAKE wire form the
// backend expects on writes.
func ToWire(s string) string {
	return strings.ToUpper(s)
}
