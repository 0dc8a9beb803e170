package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/pkg/browser"

	"github.com/top-internal/topctl/internal/api"
	"github.com/top-internal/topctl/internal/domain"
	"github.com/top-internal/topctl/internal/store"
)

const cellWidth = 24

func cell(s string) string {
	return truncate.StringWithTail(s, cellWidth, "…")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newClientsModel(deps Deps) tea.Model {
	st := store.NewList(func(c domain.Client) string { return c.ID })
	cols := []table.Column{
		{Title: "Name", Width: cellWidth},
		{Title: "Email", Width: cellWidth},
		{Title: "Phone", Width: 16},
		{Title: "Status", Width: 10},
	}
	return newListScreen("Clients", st, cols,
		func(c domain.Client) table.Row {
			return table.Row{cell(c.Name), cell(c.Email), c.Phone, c.Status}
		},
		func() ([]domain.Client, error) {
			return deps.API.Clients().List(deps.Ctx)
		},
	)
}

func newJobsModel(deps Deps) tea.Model {
	st := store.NewList(func(j domain.Job) string { return j.ID })
	cols := []table.Column{
		{Title: "Name", Width: cellWidth},
		{Title: "Client", Width: cellWidth},
		{Title: "Status", Width: 12},
		{Title: "Billing", Width: 12},
		{Title: "Priority", Width: 10},
		{Title: "Due", Width: 10},
	}
	return newListScreen("Jobs", st, cols,
		func(j domain.Job) table.Row {
			due := ""
			if !j.DueDate.IsZero() {
				due = j.DueDate.Format("2006-01-02")
			}
			return table.Row{cell(j.Name), cell(j.ClientName), j.Status, j.BillingType, j.Priority, due}
		},
		func() ([]domain.Job, error) {
			return deps.API.Jobs().List(deps.Ctx)
		},
	)
}

func newUsersModel(deps Deps) tea.Model {
	st := store.NewList(func(u domain.User) string { return u.ID })
	cols := []table.Column{
		{Title: "Name", Width: cellWidth},
		{Title: "Email", Width: cellWidth},
		{Title: "Role", Width: 12},
		{Title: "Active", Width: 8},
	}
	return newListScreen("Users", st, cols,
		func(u domain.User) table.Row {
			return table.Row{cell(u.Name), cell(u.Email), u.Role, yesNo(u.Active)}
		},
		func() ([]domain.User, error) {
			return deps.API.Users().List(deps.Ctx)
		},
	)
}

func newInvoicesModel(deps Deps) tea.Model {
	st := store.NewList(func(i domain.Invoice) string { return i.ID })
	cols := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Client", Width: cellWidth},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 14},
		{Title: "Due", Width: 10},
	}
	m := newListScreen("Invoices", st, cols,
		func(i domain.Invoice) table.Row {
			due := ""
			if !i.DueAt.IsZero() {
				due = i.DueAt.Format("2006-01-02")
			}
			return table.Row{i.Number, cell(i.ClientName), i.Status, fmt.Sprintf("%.2f %s", i.Total, i.Currency), due}
		},
		func() ([]domain.Invoice, error) {
			return deps.API.Invoices().List(deps.Ctx)
		},
	)
	m.actions = []rowAction[domain.Invoice]{
		{
			key: "s", help: "send",
			run: invoiceTransition(deps, "Send", deps.API.Invoices().Send),
		},
		{
			key: "p", help: "mark paid",
			run: invoiceTransition(deps, "Mark paid", deps.API.Invoices().MarkPaid),
		},
		{
			key: "o", help: "open",
			run: func(inv domain.Invoice) tea.Cmd {
				return func() tea.Msg {
					if inv.URL == "" {
						return ToastMsg{Text: "Invoice has no hosted page yet", IsErr: true}
					}
					if err := browser.OpenURL(inv.URL); err != nil {
						return ToastMsg{Text: "Open invoice: " + err.Error(), IsErr: true}
					}
					return nil
				}
			},
		},
	}
	return m
}

func invoiceTransition(deps Deps, verb string, call func(ctx context.Context, id string) (*domain.Invoice, error)) func(domain.Invoice) tea.Cmd {
	return func(inv domain.Invoice) tea.Cmd {
		return func() tea.Msg {
			updated, err := call(deps.Ctx, inv.ID)
			if err != nil {
				return listUpdatedMsg[domain.Invoice]{name: "Invoices", verb: verb, err: err}
			}
			return listUpdatedMsg[domain.Invoice]{name: "Invoices", verb: verb, item: *updated}
		}
	}
}

func newTimesheetsModel(deps Deps) tea.Model {
	st := store.NewList(func(t domain.Timesheet) string { return t.ID })
	cols := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "User", Width: cellWidth},
		{Title: "Task", Width: cellWidth},
		{Title: "Minutes", Width: 8},
		{Title: "Status", Width: 10},
	}
	m := newListScreen("Timesheets", st, cols,
		func(t domain.Timesheet) table.Row {
			return table.Row{t.Date.Format("2006-01-02"), cell(t.UserName), cell(t.TaskTitle), fmt.Sprintf("%d", t.Minutes), t.Status}
		},
		func() ([]domain.Timesheet, error) {
			sheets, err := deps.API.Timesheets().List(deps.Ctx)
			if err != nil {
				return nil, err
			}
			pending, err := deps.API.Timesheets().Pending(deps.Ctx)
			if err != nil {
				// Non-managers get a 403 here; their own entries still show.
				if api.IsStatus(err, 403) {
					return sheets, nil
				}
				return nil, err
			}
			seen := make(map[string]bool, len(sheets))
			for _, s := range sheets {
				seen[s.ID] = true
			}
			for _, p := range pending {
				if !seen[p.ID] {
					sheets = append(sheets, p)
				}
			}
			return sheets, nil
		},
	)
	m.actions = []rowAction[domain.Timesheet]{
		{
			key: "u", help: "submit",
			run: timesheetTransition(deps, "Submit", deps.API.Timesheets().Submit),
		},
		{
			key: "a", help: "approve",
			enabled: deps.Session.IsManager,
			run:     timesheetTransition(deps, "Approve", deps.API.Timesheets().Approve),
		},
		{
			key: "x", help: "reject",
			enabled: deps.Session.IsManager,
			run:     timesheetTransition(deps, "Reject", deps.API.Timesheets().Reject),
		},
	}
	return m
}

func timesheetTransition(deps Deps, verb string, call func(ctx context.Context, id string) (*domain.Timesheet, error)) func(domain.Timesheet) tea.Cmd {
	return func(sheet domain.Timesheet) tea.Cmd {
		return func() tea.Msg {
			updated, err := call(deps.Ctx, sheet.ID)
			if err != nil {
				return listUpdatedMsg[domain.Timesheet]{name: "Timesheets", verb: verb, err: err}
			}
			return listUpdatedMsg[domain.Timesheet]{name: "Timesheets", verb: verb, item: *updated}
		}
	}
}
