package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry records which component types a Storage may hold.
// Every Storage owns one registry, so independent worlds (a headless run and a
// test, say) never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T as a component type. It must be called before an
// entity carrying a T is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[typeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

const genericBlockSize = 64

// genericComponentStorage keeps components of type T in fixed-size blocks so that
// pointers handed out by Get stay valid while the column grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

// Append stores item (a T or *T) and returns its slot, reusing freed slots first.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, [genericBlockSize]bool{})
		}
	}

	block, slot := index/genericBlockSize, index%genericBlockSize
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.live++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete empties the slot and zeroes its value.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := index/genericBlockSize, index%genericBlockSize
	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	block := index / genericBlockSize
	if block >= len(cs.filled) {
		return false
	}
	return cs.filled[block][index%genericBlockSize]
}

// Len is the number of occupied slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

// Iter yields occupied slots in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/genericBlockSize][i%genericBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
