package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns all entities and singletons of one world.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order so iteration is deterministic.
	order    []*Archetype
	registry *ComponentRegistry

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage bound to registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// GetArchetype returns the archetype for exactly this set of components, if it exists.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	a, _ := s.archetypes.Get(hashTypesToUint32(types))
	return a
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Spawn creates a new entity with the provided components. Components may be passed
// by value or by pointer; the storage keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	index := archetype.Spawn(components)
	return NewEntityId(archetype.id, index)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	if archetype, ok := s.archetypes.Get(id); ok {
		return archetype
	}
	archetype := NewArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// Delete removes the entity and all of its components.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType) && archetype.GetComponent(id.Index(), compType) != nil
}

func (s *Storage) countWith(compType reflect.Type) int {
	n := 0
	for _, archetype := range s.order {
		if archetype.HasComponent(compType) {
			n += archetype.Len()
		}
	}
	return n
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// Pointers to the old value held by Singleton accessors are refreshed on their next Get.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	ptr := reflect.New(t)
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		ptr.Elem().Set(rv.Elem())
	} else {
		ptr.Elem().Set(rv)
	}

	if _, exists := s.singletons[t]; !exists {
		s.singletonOrder = append(s.singletonOrder, t)
	}
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	if _, ok := s.singletons[t]; !ok {
		return
	}
	delete(s.singletons, t)
	for i, typ := range s.singletonOrder {
		if typ == t {
			s.singletonOrder = append(s.singletonOrder[:i], s.singletonOrder[i+1:]...)
			break
		}
	}
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// It returns false, leaving *out untouched, when no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}
	entry := s.singletons[rv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the value type of a component passed by value or pointer.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are value types; references live inside them if needed.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// The runtime type descriptor address is unique per type.
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil when it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, typeFor[T]()).(*T)
	return comp
}
