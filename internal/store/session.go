package store

import (
	"github.com/top-internal/topctl/internal/domain"
)

// TokenClearer is the slice of the auth store the session needs for logout.
type TokenClearer interface {
	Clear() error
}

// Session holds the authenticated user and organization settings. It is
// created once at startup and passed to the screens that need it; the
// lifecycle is an explicit Load after login and Logout on teardown.
type Session struct {
	tokens   TokenClearer
	user     *domain.User
	settings *domain.OrgSettings
}

// NewSession creates an empty session backed by the given token store.
func NewSession(tokens TokenClearer) *Session {
	return &Session{tokens: tokens}
}

// Load installs the authenticated user and org settings after login.
func (s *Session) Load(user *domain.User, settings *domain.OrgSettings) {
	s.user = user
	s.settings = settings
}

// User returns the authenticated user, or nil before Load.
func (s *Session) User() *domain.User {
	return s.user
}

// Settings returns the organization settings, or nil before Load.
func (s *Session) Settings() *domain.OrgSettings {
	return s.settings
}

// SetSettings replaces the org settings after a successful update.
func (s *Session) SetSettings(settings *domain.OrgSettings) {
	s.settings = settings
}

// IsManager reports whether the session user may act on other users'
// timesheets. False before Load.
func (s *Session) IsManager() bool {
	return s.user != nil && s.user.IsManager()
}

// Logout clears both the stored token and the in-memory session state.
func (s *Session) Logout() error {
	s.user = nil
	s.settings = nil
	if s.tokens == nil {
		return nil
	}
	return s.tokens.Clear()
}
