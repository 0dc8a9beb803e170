package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/top-internal/topctl/internal/domain"
)

type fakeClearer struct {
	cleared bool
}

func (f *fakeClearer) Clear() error {
	f.cleared = true
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	tokens := &fakeClearer{}
	s := NewSession(tokens)

	assert.Nil(t, s.User())
	assert.False(t, s.IsManager())

	s.Load(
		&domain.User{ID: "usr_1", Name: "Dana", Role: domain.RoleManager},
		&domain.OrgSettings{Locale: "en-AU", Currency: "AUD"},
	)
	require.NotNil(t, s.User())
	assert.True(t, s.IsManager())
	assert.Equal(t, "AUD", s.Settings().Currency)

	require.NoError(t, s.Logout())
	assert.True(t, tokens.cleared, "logout clears the token store")
	assert.Nil(t, s.User())
	assert.Nil(t, s.Settings())
}

func TestSessionEmployeeIsNotManager(t *testing.T) {
	s := NewSession(nil)
	s.Load(&domain.User{Role: domain.RoleEmployee}, nil)
	assert.False(t, s.IsManager())
}

func TestListStore(t *testing.T) {
	s := NewList(func(c domain.Client) string { return c.ID })
	s.Set([]domain.Client{
		{ID: "cli_1", Name: "Acme"},
		{ID: "cli_2", Name: "Globex"},
	})

	assert.Equal(t, 2, s.Len())

	c, ok := s.Get("cli_2")
	require.True(t, ok)
	assert.Equal(t, "Globex", c.Name)

	s.Upsert(domain.Client{ID: "cli_2", Name: "Globex Corp"})
	c, _ = s.Get("cli_2")
	assert.Equal(t, "Globex Corp", c.Name)
	assert.Equal(t, 2, s.Len())

	s.Remove("cli_1")
	assert.Equal(t, 1, s.Len())
	_, ok = s.Get("cli_1")
	assert.False(t, ok)
}
