package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of component types.
// Each type gets its own column; an entity occupies the same slot in all of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
}

// NewArchetype creates an archetype for the sorted component types.
// It panics if any type is not registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends one entity built from components and returns its slot.
// Columns are appended in lockstep, so every column returns the same slot.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.columnOf(componentType(comp))
		if idx < 0 {
			continue
		}
		slot = a.storages[idx].Append(comp)
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of compType stored at index, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	idx := a.columnOf(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(index))
}

// Delete frees the slot in every column. Slot numbers of other entities do not move.
func (a *Archetype) Delete(index uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(index))
	}
}

// HasComponent reports whether the archetype includes compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the EntityId of every live entity.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func (a *Archetype) columnOf(t reflect.Type) int {
	return slices.Index(a.types, t)
}
