// Package layout implements the field-layout template model for Jobs and
// Tasks: a layout is a named, ordered template of fields, each either a
// platform-provisioned system field or a user-defined custom field. The two
// entity kinds do not share storage but share identical rules.
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EntityKind identifies which entity a layout belongs to. The kind doubles
// as the API resource namespace (/layouts/<kind>).
type EntityKind string

const (
	KindJobs  EntityKind = "jobs"
	KindTasks EntityKind = "tasks"
)

// Kinds returns all entity kinds in display order.
func Kinds() []EntityKind {
	return []EntityKind{KindJobs, KindTasks}
}

// FieldType is the closed set of layout field types. The reference types
// (client, job, tasktype, users) point at other entities, are provisioned by
// the platform per entity kind, and can never be created as custom fields.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeSelect   FieldType = "select"
	TypeCheckbox FieldType = "checkbox"
	TypeTextarea FieldType = "textarea"

	// System-only reference types.
	TypeClient   FieldType = "client"
	TypeJob      FieldType = "job"
	TypeTaskType FieldType = "tasktype"
	TypeUsers    FieldType = "users"
)

// TypeMeta carries per-type display metadata and capability flags. The table
// below covers every FieldType; a test enumerates all variants against it so
// adding a type without extending the table fails loudly.
type TypeMeta struct {
	Label          string
	Color          string // lipgloss ANSI color used by the builder
	UserDefinable  bool   // may be created through the add-field flow
	HasOptions     bool   // carries an options list (select only)
	HasPlaceholder bool   // placeholder hint is meaningful
}

var typeMeta = map[FieldType]TypeMeta{
	TypeText:     {Label: "Text", Color: "75", UserDefinable: true, HasPlaceholder: true},
	TypeNumber:   {Label: "Number", Color: "114", UserDefinable: true, HasPlaceholder: true},
	TypeDate:     {Label: "Date", Color: "180", UserDefinable: true},
	TypeSelect:   {Label: "Select", Color: "176", UserDefinable: true, HasOptions: true},
	TypeCheckbox: {Label: "Checkbox", Color: "72", UserDefinable: true},
	TypeTextarea: {Label: "Text Area", Color: "75", UserDefinable: true, HasPlaceholder: true},
	TypeClient:   {Label: "Client", Color: "208"},
	TypeJob:      {Label: "Job", Color: "208"},
	TypeTaskType: {Label: "Task Type", Color: "208"},
	TypeUsers:    {Label: "Users", Color: "208"},
}

// Meta returns the metadata for a field type. The zero TypeMeta is returned
// for unknown types.
func (t FieldType) Meta() TypeMeta {
	return typeMeta[t]
}

// Valid reports whether t is a member of the closed type set.
func (t FieldType) Valid() bool {
	_, ok := typeMeta[t]
	return ok
}

// UserDefinable reports whether the type may be chosen in the add-field flow.
func (t FieldType) UserDefinable() bool {
	return typeMeta[t].UserDefinable
}

// UserTypes returns the user-definable types in the order the builder's type
// selector cycles through them.
func UserTypes() []FieldType {
	return []FieldType{TypeText, TypeNumber, TypeDate, TypeSelect, TypeCheckbox, TypeTextarea}
}

// AllTypes returns every member of the closed type set.
func AllTypes() []FieldType {
	return []FieldType{
		TypeText, TypeNumber, TypeDate, TypeSelect, TypeCheckbox, TypeTextarea,
		TypeClient, TypeJob, TypeTaskType, TypeUsers,
	}
}

// Field is one field definition within a layout.
type Field struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	System      bool      `json:"system"`
	Order       int       `json:"order"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Validation errors shared by the draft builder and the field model.
var (
	ErrEmptyLabel      = errors.New("field label must not be empty")
	ErrNotUserType     = errors.New("field type cannot be user-defined")
	ErrNoOptions       = errors.New("select field requires at least one option")
	ErrStrayOptions    = errors.New("options are only valid on select fields")
	ErrSystemImmutable = errors.New("system fields cannot be removed")
	ErrFieldNotFound   = errors.New("field not found")
	ErrEmptyName       = errors.New("layout name must not be empty")
)

// Validate checks the field-level invariants: non-empty label, known type,
// and options present iff the type is select.
func (f Field) Validate() error {
	if strings.TrimSpace(f.Label) == "" {
		return ErrEmptyLabel
	}
	if !f.Type.Valid() {
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	if f.Type == TypeSelect && len(f.Options) == 0 {
		return ErrNoOptions
	}
	if f.Type != TypeSelect && len(f.Options) > 0 {
		return ErrStrayOptions
	}
	return nil
}

// Layout is a named, ordered template of fields for one entity kind.
type Layout struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	Fields    []Field   `json:"fields"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomFields returns the user-defined fields in order.
func (l Layout) CustomFields() []Field {
	var out []Field
	for _, f := range l.Fields {
		if !f.System {
			out = append(out, f)
		}
	}
	return out
}

// SystemFields returns the platform-provisioned fields in order.
func (l Layout) SystemFields() []Field {
	var out []Field
	for _, f := range l.Fields {
		if f.System {
			out = append(out, f)
		}
	}
	return out
}

const (
	customKeyPrefix = "custom_"

	// Custom fields are appended starting at this order value; system fields
	// occupy the reserved range below it.
	CustomOrderBase = 100
)

// FieldKey derives the stable key for a new custom field: the label is
// lower-cased, every character outside [a-z0-9] becomes '_', and the result
// is wrapped in the custom_ prefix and a creation-time token. The token
// disambiguates fields that share a label; it only needs to be unique within
// an editing session. The algorithm must not change: stored field values are
// keyed by it.
func FieldKey(label string, at time.Time) string {
	var b strings.Builder
	b.WriteString(customKeyPrefix)
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(at.UnixMilli(), 10))
	return b.String()
}

// IsCustomKey reports whether a key was generated for a custom field.
func IsCustomKey(key string) bool {
	return strings.HasPrefix(key, customKeyPrefix)
}
