// Package tui provides the Bubble Tea models for the topctl screens.
package tui

import (
	"github.com/top-internal/topctl/internal/domain"
)

// ToastMsg requests a transient notification. Mutating operations emit one
// for both success and failure.
type ToastMsg struct {
	Text  string
	IsErr bool
}

// ErrorMsg is emitted for unrecoverable screen errors.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// sessionLoadedMsg carries the result of the post-login session bootstrap.
type sessionLoadedMsg struct {
	user     *domain.User
	settings *domain.OrgSettings
	err      error
}
