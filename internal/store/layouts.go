// Package store provides the in-memory state each screen works against.
// Stores are mutated only by their own methods from the UI event loop; the
// conflict policy with the server is last successful response wins.
package store

import (
	"errors"

	"github.com/top-internal/topctl/internal/layout"
)

var (
	// ErrLayoutNotFound indicates the requested layout does not exist.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrLastLayout indicates a delete would remove the kind's only layout.
	ErrLastLayout = errors.New("cannot remove the last layout of a kind")
)

// Layouts holds the layout templates and provisioned system fields for one
// entity kind.
type Layouts struct {
	kind    layout.EntityKind
	layouts []layout.Layout
	system  []layout.Field
}

// NewLayouts creates an empty layout store for a kind.
func NewLayouts(kind layout.EntityKind) *Layouts {
	return &Layouts{kind: kind}
}

// Kind returns the entity kind this store holds layouts for.
func (s *Layouts) Kind() layout.EntityKind {
	return s.kind
}

// Set replaces the stored layouts and system field set from a list response.
func (s *Layouts) Set(layouts []layout.Layout, system []layout.Field) {
	s.layouts = append([]layout.Layout(nil), layouts...)
	s.system = append([]layout.Field(nil), system...)
}

// All returns a copy of the stored layouts.
func (s *Layouts) All() []layout.Layout {
	return append([]layout.Layout(nil), s.layouts...)
}

// SystemFields returns a copy of the provisioned system field set.
func (s *Layouts) SystemFields() []layout.Field {
	return append([]layout.Field(nil), s.system...)
}

// Len returns the number of stored layouts.
func (s *Layouts) Len() int {
	return len(s.layouts)
}

// Get returns the layout with the given id.
func (s *Layouts) Get(id string) (layout.Layout, error) {
	for _, l := range s.layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return layout.Layout{}, ErrLayoutNotFound
}

// Default returns the kind's default layout, or ErrLayoutNotFound when the
// set is empty.
func (s *Layouts) Default() (layout.Layout, error) {
	for _, l := range s.layouts {
		if l.IsDefault {
			return l, nil
		}
	}
	return layout.Layout{}, ErrLayoutNotFound
}

// Upsert inserts or replaces a layout after a successful create or update.
// When the layout is the default, every sibling's default flag is cleared so
// the local list mirrors the server's atomic un-defaulting.
func (s *Layouts) Upsert(l layout.Layout) {
	replaced := false
	for i := range s.layouts {
		if s.layouts[i].ID == l.ID {
			s.layouts[i] = l
			replaced = true
		} else if l.IsDefault {
			s.layouts[i].IsDefault = false
		}
	}
	if !replaced {
		s.layouts = append(s.layouts, l)
	}
}

// Remove deletes a layout after a successful server delete. Removing the
// last layout is refused to preserve the at-least-one invariant; the UI
// hides the delete affordance in that case too.
func (s *Layouts) Remove(id string) error {
	if len(s.layouts) <= 1 {
		return ErrLastLayout
	}
	for i, l := range s.layouts {
		if l.ID == id {
			wasDefault := l.IsDefault
			s.layouts = append(s.layouts[:i], s.layouts[i+1:]...)
			// The server reassigns the default when the default layout is
			// deleted; promote the first sibling locally to match.
			if wasDefault && len(s.layouts) > 0 {
				s.ApplyDefault(s.layouts[0].ID)
			}
			return nil
		}
	}
	return ErrLayoutNotFound
}

// CanDelete reports whether deleting a layout is currently offered at all.
func (s *Layouts) CanDelete() bool {
	return len(s.layouts) > 1
}

// ApplyDefault marks id as default and clears every sibling, mirroring the
// server's setDefault semantics: exactly one default whenever the set is
// non-empty.
func (s *Layouts) ApplyDefault(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	for i := range s.layouts {
		s.layouts[i].IsDefault = s.layouts[i].ID == id
	}
	return nil
}
