package layout

import (
	"strings"
	"time"
)

// Draft is the editing-session model behind the layout builder. It holds the
// system fields read-only, accumulates custom-field additions and removals,
// and produces the full custom-field list the persistence contract expects
// on save. Fields are only appended or removed, never reordered.
type Draft struct {
	ID        string // empty for a new layout
	Name      string
	IsDefault bool

	system    []Field
	custom    []Field
	nextOrder int

	now func() time.Time
}

// NewDraft starts a draft for a new layout of a kind whose provisioned
// system fields are given. The system fields keep the order the provisioning
// assigned; it is treated as opaque.
func NewDraft(system []Field) *Draft {
	return &Draft{
		system:    append([]Field(nil), system...),
		nextOrder: CustomOrderBase,
		now:       time.Now,
	}
}

// DraftFrom starts a draft editing an existing layout. The layout's own
// system fields take precedence over the provisioned set so a round trip
// without edits leaves them untouched.
func DraftFrom(l Layout) *Draft {
	d := &Draft{
		ID:        l.ID,
		Name:      l.Name,
		IsDefault: l.IsDefault,
		system:    l.SystemFields(),
		custom:    l.CustomFields(),
		nextOrder: CustomOrderBase,
		now:       time.Now,
	}
	for _, f := range d.custom {
		if f.Order >= d.nextOrder {
			d.nextOrder = f.Order + 1
		}
	}
	return d
}

// AddField validates and appends one custom field, assigning its key and
// order. Validation failures leave the draft unchanged and no field is
// appended. Options and placeholder are only kept where the type allows
// them.
func (d *Draft) AddField(label string, t FieldType, required bool, options []string, placeholder string) (Field, error) {
	if !t.UserDefinable() {
		return Field{}, ErrNotUserType
	}

	meta := t.Meta()
	if !meta.HasOptions {
		options = nil
	}
	if !meta.HasPlaceholder {
		placeholder = ""
	}

	f := Field{
		Label:       strings.TrimSpace(label),
		Type:        t,
		Required:    required,
		Options:     trimOptions(options),
		Placeholder: strings.TrimSpace(placeholder),
	}
	if err := f.Validate(); err != nil {
		return Field{}, err
	}

	at := d.now()
	f.Key = FieldKey(f.Label, at)
	for d.hasKey(f.Key) {
		// Two additions of the same label within one millisecond; nudge the
		// token until the key is unique in this session.
		at = at.Add(time.Millisecond)
		f.Key = FieldKey(f.Label, at)
	}

	f.Order = d.nextOrder
	d.nextOrder++
	d.custom = append(d.custom, f)
	return f, nil
}

// RemoveField removes a custom field by key. System fields are refused;
// their membership is owned by the platform provisioning.
func (d *Draft) RemoveField(key string) error {
	for _, f := range d.system {
		if f.Key == key {
			return ErrSystemImmutable
		}
	}
	for i, f := range d.custom {
		if f.Key == key {
			d.custom = append(d.custom[:i], d.custom[i+1:]...)
			return nil
		}
	}
	return ErrFieldNotFound
}

// SystemFields returns a copy of the read-only system field list.
func (d *Draft) SystemFields() []Field {
	return append([]Field(nil), d.system...)
}

// CustomFields returns a copy of the current custom field list, in append
// order. This is the array handed to create/update on save; system fields
// are never part of it.
func (d *Draft) CustomFields() []Field {
	return append([]Field(nil), d.custom...)
}

// Validate checks the draft-level invariants before a save is attempted.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	for _, f := range d.custom {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Draft) hasKey(key string) bool {
	for _, f := range d.system {
		if f.Key == key {
			return true
		}
	}
	for _, f := range d.custom {
		if f.Key == key {
			return true
		}
	}
	return false
}

func trimOptions(options []string) []string {
	var out []string
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
