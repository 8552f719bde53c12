package core

import "iter"

// NameMap is a dense table from Name to T with one slot per possible name.
//
// The zero value is an empty map ready to use. NameMap has value semantics:
// assigning it copies every slot, so a copy can be mutated independently
// (slices stored inside T are still shared).
//
// Complexity: Get/Insert/Delete/Contains O(1); iteration O(MaxName).
type NameMap[T any] struct {
	values [MaxName]T
	set    [MaxName]bool
	n      int
}

// NameSet is a presence-only NameMap.
type NameSet = NameMap[struct{}]

// Get returns the value stored under name and whether it was present.
func (m *NameMap[T]) Get(name Name) (T, bool) {
	i := name.Index()

	return m.values[i], m.set[i]
}

// Ptr returns a pointer to the slot for name, or nil if it is empty.
// The pointer is valid for as long as m is not copied.
func (m *NameMap[T]) Ptr(name Name) *T {
	i := name.Index()
	if !m.set[i] {
		return nil
	}

	return &m.values[i]
}

// Insert stores v under name, replacing any previous value.
func (m *NameMap[T]) Insert(name Name, v T) {
	i := name.Index()
	if !m.set[i] {
		m.set[i] = true
		m.n++
	}
	m.values[i] = v
}

// Delete clears the slot for name. No-op if it is empty.
func (m *NameMap[T]) Delete(name Name) {
	i := name.Index()
	if !m.set[i] {
		return
	}
	var zero T
	m.values[i] = zero
	m.set[i] = false
	m.n--
}

// Contains reports whether name has a value.
func (m *NameMap[T]) Contains(name Name) bool {
	return m.set[name.Index()]
}

// Len returns the number of occupied slots.
func (m *NameMap[T]) Len() int { return m.n }

// IsEmpty reports whether no slot is occupied.
func (m *NameMap[T]) IsEmpty() bool { return m.n == 0 }

// All iterates occupied slots in index order, which is alphabetical name order.
func (m *NameMap[T]) All() iter.Seq2[Name, T] {
	return func(yield func(Name, T) bool) {
		for i := range m.set {
			if !m.set[i] {
				continue
			}
			if !yield(NameFromIndex(i), m.values[i]) {
				return
			}
		}
	}
}

// Keys returns the occupied names in index order.
func (m *NameMap[T]) Keys() []Name {
	keys := make([]Name, 0, m.n)
	for i := range m.set {
		if m.set[i] {
			keys = append(keys, NameFromIndex(i))
		}
	}

	return keys
}
