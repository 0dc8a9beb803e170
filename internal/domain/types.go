// Package domain defines the normalized display types for TOP Internal
// entities. The backend represents enums in UPPER_SNAKE case and relations
// as nested objects; everything here is the flattened lower_snake shape the
// rest of the application works with.
package domain

import "time"

// Client represents a billing client of the organization.
type Client struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Status string // active, archived
}

// Job represents a billable job for a client.
type Job struct {
	ID          string
	Name        string
	ClientID    string
	ClientName  string // Flattened from the nested client relation
	Status      string // JobStatus value
	BillingType string // BillingType value
	Priority    string // Priority value
	LayoutID    string // Layout template used for the job's custom fields
	DueDate     time.Time
}

// Task represents a unit of work inside a job.
type Task struct {
	ID             string
	Title          string
	JobID          string
	JobName        string // Flattened from the nested job relation
	AssigneeID     string
	AssigneeName   string // Flattened from the nested assignee relation
	Status         string // TaskStatus value
	Priority       string // Priority value
	TimerRunning   bool
	TrackedMinutes int
}

// Timesheet represents one tracked time entry.
type Timesheet struct {
	ID        string
	UserID    string
	UserName  string
	TaskID    string
	TaskTitle string
	Date      time.Time
	Minutes   int
	Status    string // TimesheetStatus value
	Notes     string
}

// User represents an account in the organization.
type User struct {
	ID     string
	Name   string
	Email  string
	Role   string // Role value
	Active bool
}

// Invoice represents an issued invoice.
type Invoice struct {
	ID         string
	Number     string
	ClientID   string
	ClientName string
	Status     string // InvoiceStatus value
	Total      float64
	Currency   string
	URL        string // Hosted invoice page, may be empty for drafts
	IssuedAt   time.Time
	DueAt      time.Time
}

// DashboardStats is the aggregate snapshot shown on the dashboard screen.
type DashboardStats struct {
	ActiveJobs        int
	OpenTasks         int
	PendingTimesheets int
	UnpaidInvoices    int
	MinutesThisWeek   int
	MinutesThisMonth  int
}

// ReportRow is one line of the time report.
type ReportRow struct {
	UserName string
	JobName  string
	TaskName string
	Date     time.Time
	Minutes  int
	Billable bool
}

// OrgSettings holds organization-wide locale and notification settings.
type OrgSettings struct {
	OrgName      string
	Locale       string
	Timezone     string
	Currency     string
	WeekStart    string // monday or sunday
	NotifyEmail  bool
	NotifyDigest bool
}

// TaskType is one entry of the organization's task taxonomy.
type TaskType struct {
	ID    string
	Name  string
	Color string
}

// IsManager reports whether the user may act on other users' timesheets.
func (u User) IsManager() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
