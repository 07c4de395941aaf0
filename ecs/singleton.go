package ecs

import "reflect"

// Singleton gives systems access to one global value of type T that is not attached
// to any entity, such as input state or tuning constants.
type Singleton[T any] struct {
	storage       *Storage
	componentType reflect.Type
}

// NewSingleton returns an accessor for the T singleton of storage, creating it from
// initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := typeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	return &Singleton[T]{
		storage:       storage,
		componentType: t,
	}
}

// Init binds the accessor to storage. The Scheduler calls it during registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = typeFor[T]()
}

// Get returns the singleton, or nil if it has not been added to storage.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// Exists returns true if the singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
