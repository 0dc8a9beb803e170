package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	assert.Equal(t, "custom_reference_number_1700000000000", FieldKey("Reference Number", at))
	assert.Equal(t, "custom_po___42_1700000000000", FieldKey("PO # 42", at))
	assert.Equal(t, "custom__1700000000000", FieldKey("", at))

	// Deterministic for the same label and instant.
	assert.Equal(t, FieldKey("Budget", at), FieldKey("Budget", at))
	// Distinct instants disambiguate identical labels.
	assert.NotEqual(t, FieldKey("Budget", at), FieldKey("Budget", at.Add(time.Millisecond)))
}

func TestIsCustomKey(t *testing.T) {
	assert.True(t, IsCustomKey("custom_budget_1700000000000"))
	assert.False(t, IsCustomKey("client"))
}

func TestFieldValidate(t *testing.T) {
	valid := Field{Label: "Budget", Type: TypeNumber}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, Field{Label: "  ", Type: TypeText}.Validate(), ErrEmptyLabel)
	assert.ErrorIs(t, Field{Label: "Stage", Type: TypeSelect}.Validate(), ErrNoOptions)
	assert.ErrorIs(t, Field{Label: "Note", Type: TypeText, Options: []string{"a"}}.Validate(), ErrStrayOptions)
	assert.Error(t, Field{Label: "X", Type: FieldType("wat")}.Validate())

	withOptions := Field{Label: "Stage", Type: TypeSelect, Options: []string{"Open", "Closed"}}
	assert.NoError(t, withOptions.Validate())
}

// TestTypeMetaExhaustive guards the closed type set: every variant must have
// an entry in the metadata table, so that rendering and validation switch
// points cannot silently miss a new type.
func TestTypeMetaExhaustive(t *testing.T) {
	for _, ft := range AllTypes() {
		meta := ft.Meta()
		assert.True(t, ft.Valid(), "type %q missing from meta table", ft)
		assert.NotEmpty(t, meta.Label, "type %q has no display label", ft)
		assert.NotEmpty(t, meta.Color, "type %q has no color", ft)
	}

	// The reference types are exactly the non-user-definable ones.
	for _, ft := range AllTypes() {
		switch ft {
		case TypeClient, TypeJob, TypeTaskType, TypeUsers:
			assert.False(t, ft.UserDefinable(), "reference type %q must not be user-definable", ft)
		default:
			assert.True(t, ft.UserDefinable(), "type %q should be user-definable", ft)
		}
	}

	for _, ft := range UserTypes() {
		assert.True(t, ft.UserDefinable())
	}
}

func TestLayoutFieldSplit(t *testing.T) {
	l := Layout{
		Fields: []Field{
			{Key: "client", Label: "Client", Type: TypeClient, System: true, Order: 0},
			{Key: "tasktype", Label: "Task Type", Type: TypeTaskType, System: true, Order: 1},
			{Key: "custom_budget_1", Label: "Budget", Type: TypeNumber, Order: 100},
		},
	}

	system := l.SystemFields()
	require.Len(t, system, 2)
	assert.Equal(t, "client", system[0].Key)

	custom := l.CustomFields()
	require.Len(t, custom, 1)
	assert.Equal(t, "custom_budget_1", custom[0].Key)
}
