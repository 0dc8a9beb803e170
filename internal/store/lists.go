package store

// List is the generic list state behind the simple entity screens (clients,
// jobs, users, invoices, timesheets). Identity is provided by the id
// function so the element types stay plain structs.
type List[T any] struct {
	items []T
	id    func(T) string
}

// NewList creates an empty list store keyed by id.
func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// Set replaces the stored items from a list response.
func (s *List[T]) Set(items []T) {
	s.items = append([]T(nil), items...)
}

// All returns a copy of the stored items.
func (s *List[T]) All() []T {
	return append([]T(nil), s.items...)
}

// Len returns the number of stored items.
func (s *List[T]) Len() int {
	return len(s.items)
}

// Get returns the item with the given id.
func (s *List[T]) Get(id string) (T, bool) {
	for _, item := range s.items {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Upsert inserts or replaces an item after a successful mutation.
func (s *List[T]) Upsert(item T) {
	key := s.id(item)
	for i := range s.items {
		if s.id(s.items[i]) == key {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

// Remove deletes the item with the given id.
func (s *List[T]) Remove(id string) {
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
