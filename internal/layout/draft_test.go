package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobSystemFields() []Field {
	return []Field{
		{Key: "client", Label: "Client", Type: TypeClient, Required: true, System: true, Order: 0},
		{Key: "tasktype", Label: "Task Type", Type: TypeTaskType, System: true, Order: 1},
		{Key: "users", Label: "Assigned Users", Type: TypeUsers, System: true, Order: 2},
	}
}

// fixedClock returns a draft clock that advances one millisecond per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestDraftAddField(t *testing.T) {
	d := NewDraft(jobSystemFields())
	d.now = fixedClock(time.UnixMilli(1700000000000))
	d.Name = "Standard Job"
	d.IsDefault = true

	f, err := d.AddField("Reference Number", TypeText, true, nil, "e.g. REF-001")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.Key, "custom_reference_number_"))
	assert.True(t, f.Required)
	assert.Equal(t, CustomOrderBase, f.Order)
	assert.Equal(t, "e.g. REF-001", f.Placeholder)
	assert.False(t, f.System)

	// Orders increment per addition.
	g, err := d.AddField("Budget", TypeNumber, false, nil, "")
	require.NoError(t, err)
	assert.Equal(t, CustomOrderBase+1, g.Order)

	require.Len(t, d.CustomFields(), 2)
	assert.NoError(t, d.Validate())
}

func TestDraftAddFieldValidation(t *testing.T) {
	d := NewDraft(jobSystemFields())

	_, err := d.AddField("", TypeText, false, nil, "")
	assert.ErrorIs(t, err, ErrEmptyLabel)

	// A select field with no options is rejected before anything is appended.
	_, err = d.AddField("Stage", TypeSelect, false, nil, "")
	assert.ErrorIs(t, err, ErrNoOptions)
	_, err = d.AddField("Stage", TypeSelect, false, []string{"  ", ""}, "")
	assert.ErrorIs(t, err, ErrNoOptions)

	// Reference types can never be created as custom fields.
	_, err = d.AddField("Client", TypeClient, false, nil, "")
	assert.ErrorIs(t, err, ErrNotUserType)

	assert.Empty(t, d.CustomFields())
}

func TestDraftAddFieldDropsIrrelevantAttributes(t *testing.T) {
	d := NewDraft(nil)

	// Options only survive on select fields, placeholder only where the type
	// supports it.
	f, err := d.AddField("Done", TypeCheckbox, false, []string{"yes"}, "hint")
	require.NoError(t, err)
	assert.Empty(t, f.Options)
	assert.Empty(t, f.Placeholder)

	g, err := d.AddField("Stage", TypeSelect, false, []string{"Open", " Closed "}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Open", "Closed"}, g.Options)
}

func TestDraftKeyUniqueness(t *testing.T) {
	d := NewDraft(jobSystemFields())
	// Clock frozen at one instant: identical labels would collide without the
	// in-session disambiguation.
	at := time.UnixMilli(1700000000000)
	d.now = func() time.Time { return at }

	a, err := d.AddField("Notes", TypeText, false, nil, "")
	require.NoError(t, err)
	b, err := d.AddField("Notes", TypeText, false, nil, "")
	require.NoError(t, err)
	c, err := d.AddField("Notes", TypeText, false, nil, "")
	require.NoError(t, err)

	keys := map[string]bool{a.Key: true, b.Key: true, c.Key: true}
	assert.Len(t, keys, 3, "keys must be unique within the layout")
}

func TestDraftRemoveField(t *testing.T) {
	d := NewDraft(jobSystemFields())
	d.now = fixedClock(time.UnixMilli(1700000000000))

	f, err := d.AddField("Budget", TypeNumber, false, nil, "")
	require.NoError(t, err)

	assert.ErrorIs(t, d.RemoveField("client"), ErrSystemImmutable)
	assert.ErrorIs(t, d.RemoveField("custom_missing_1"), ErrFieldNotFound)

	require.NoError(t, d.RemoveField(f.Key))
	assert.Empty(t, d.CustomFields())
	assert.Len(t, d.SystemFields(), 3)
}

func TestDraftFrom(t *testing.T) {
	l := Layout{
		ID:        "lay_1",
		Name:      "Standard Job",
		IsDefault: true,
		Fields: []Field{
			{Key: "client", Label: "Client", Type: TypeClient, System: true, Order: 0},
			{Key: "custom_budget_1700000000000", Label: "Budget", Type: TypeNumber, Order: 100},
			{Key: "custom_stage_1700000000001", Label: "Stage", Type: TypeSelect, Options: []string{"Open"}, Order: 101},
		},
	}

	d := DraftFrom(l)
	d.now = fixedClock(time.UnixMilli(1700000100000))

	assert.Equal(t, "lay_1", d.ID)
	assert.Equal(t, "Standard Job", d.Name)
	assert.True(t, d.IsDefault)
	assert.Len(t, d.SystemFields(), 1)
	assert.Len(t, d.CustomFields(), 2)

	// New additions continue past the highest existing custom order.
	f, err := d.AddField("Notes", TypeTextarea, false, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 102, f.Order)
}

func TestDraftValidate(t *testing.T) {
	d := NewDraft(nil)
	assert.ErrorIs(t, d.Validate(), ErrEmptyName)

	d.Name = "Minimal"
	assert.NoError(t, d.Validate())
}
