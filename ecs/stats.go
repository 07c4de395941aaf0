package ecs

// StorageStats is a point-in-time census of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in a StorageStats.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats counts archetypes, live entities and singletons.
// Archetypes whose entities were all deleted still count as archetypes.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.order),
		SingletonCount: len(s.singletonOrder),
	}

	for _, archetype := range s.order {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for _, t := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	return stats
}
