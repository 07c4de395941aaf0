package ecs

// EntityId encodes the archetype ID (upper 32 bits) and the slot index inside that
// archetype (lower 32 bits).
type EntityId uint64

// NewEntityId packs an archetype ID and slot index into an EntityId.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
