package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/top-internal/topctl/internal/layout"
)

func testLayouts() []layout.Layout {
	return []layout.Layout{
		{ID: "lay_1", Name: "Standard Job", IsDefault: true},
		{ID: "lay_2", Name: "Fixed Price Job"},
		{ID: "lay_3", Name: "Internal Job"},
	}
}

func testSystemFields() []layout.Field {
	return []layout.Field{
		{Key: "client", Label: "Client", Type: layout.TypeClient, System: true, Order: 0},
		{Key: "users", Label: "Assigned Users", Type: layout.TypeUsers, System: true, Order: 1},
	}
}

func TestLayoutsSetAndGet(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), testSystemFields())

	assert.Equal(t, layout.KindJobs, s.Kind())
	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.SystemFields(), 2)

	l, err := s.Get("lay_2")
	require.NoError(t, err)
	assert.Equal(t, "Fixed Price Job", l.Name)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

// TestExactlyOneDefault covers the core invariant: after ApplyDefault(x),
// x is default and every sibling is not.
func TestExactlyOneDefault(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), nil)

	require.NoError(t, s.ApplyDefault("lay_3"))

	defaults := 0
	for _, l := range s.All() {
		if l.IsDefault {
			defaults++
			assert.Equal(t, "lay_3", l.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestApplyDefaultUnknownIDLeavesStateIntact(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), nil)

	assert.ErrorIs(t, s.ApplyDefault("nope"), ErrLayoutNotFound)

	d, err := s.Default()
	require.NoError(t, err)
	assert.Equal(t, "lay_1", d.ID, "failed apply must not drop the existing default")
}

func TestUpsertNewDefaultClearsSiblings(t *testing.T) {
	s := NewLayouts(layout.KindTasks)
	s.Set(testLayouts(), nil)

	s.Upsert(layout.Layout{ID: "lay_4", Name: "QA Task", IsDefault: true})

	assert.Equal(t, 4, s.Len())
	d, err := s.Default()
	require.NoError(t, err)
	assert.Equal(t, "lay_4", d.ID)
}

func TestRemove(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), nil)

	require.NoError(t, s.Remove("lay_2"))
	assert.Equal(t, 2, s.Len())

	assert.ErrorIs(t, s.Remove("nope"), ErrLayoutNotFound)
}

func TestRemoveDefaultPromotesSibling(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), nil)

	require.NoError(t, s.Remove("lay_1"))

	d, err := s.Default()
	require.NoError(t, err)
	assert.Equal(t, "lay_2", d.ID)
}

func TestRemoveLastLayoutRefused(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set([]layout.Layout{{ID: "lay_1", Name: "Only", IsDefault: true}}, nil)

	assert.False(t, s.CanDelete())
	assert.ErrorIs(t, s.Remove("lay_1"), ErrLastLayout)
	assert.Equal(t, 1, s.Len())
}

func TestCanDelete(t *testing.T) {
	s := NewLayouts(layout.KindJobs)
	s.Set(testLayouts(), nil)
	assert.True(t, s.CanDelete())
}
