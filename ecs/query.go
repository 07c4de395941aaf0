package ecs

import "iter"

// Query is a View that remembers which archetypes match, so systems that run every
// tick only rescan storage when a new archetype appears.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it during registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if n := len(q.storage.order); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}
	return q.cachedArchetypes
}

// Entries yields the EntityId and view struct of every match.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	if q.view == nil {
		panic("Query used before Init")
	}
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes() {
			for id, item := range q.view.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Iter yields the view struct of every match.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Entries() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Entries() {
		n++
	}
	return n
}

// Single returns the only match. ok is false when there are zero or several matches.
func (q *Query[T]) Single() (item T, ok bool) {
	found := 0
	for _, candidate := range q.Entries() {
		found++
		if found > 1 {
			var zero T
			return zero, false
		}
		item = candidate
	}
	return item, found == 1
}
