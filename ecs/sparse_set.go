package ecs

// SparseSet is a cache-friendly storage for components keyed by entity id.
// Every value remembers the world tick at which it was first inserted so
// systems can ask for components added since they last ran.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	denseAdded    []uint64
	sparse        []int
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has returns true if the entity exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.denseValues[idx]
}

// AddedAt returns the tick at which the component for e was inserted.
func (s *SparseSet) AddedAt(e Entity) (uint64, bool) {
	idx, ok := s.index(e)
	if !ok {
		return 0, false
	}
	return s.denseAdded[idx], true
}

// Set inserts or replaces a component for e. Replacing keeps the original
// insertion tick. It reports whether the value was newly inserted.
func (s *SparseSet) Set(e Entity, v any, tick uint64) bool {
	if s == nil || e.id() == 0 {
		return false
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return false
	}
	// A stale generation for the same id may still occupy the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.denseEntities) && s.denseEntities[old].id() == e.id() {
		s.removeAt(old)
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.denseAdded = append(s.denseAdded, tick)
	s.sparse[id-1] = len(s.denseEntities) - 1
	return true
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *SparseSet) removeAt(idx int) {
	last := len(s.denseEntities) - 1
	removedID := s.denseEntities[idx].id()
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = lastEntity
	s.denseValues[idx] = s.denseValues[last]
	s.denseAdded[idx] = s.denseAdded[last]
	s.sparse[lastEntity.id()-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.denseAdded = s.denseAdded[:last]
	s.sparse[removedID-1] = -1
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns a copy of the dense entity list, safe to iterate while
// the set is mutated.
func (s *SparseSet) Entities() []Entity {
	if s == nil || len(s.denseEntities) == 0 {
		return nil
	}
	out := make([]Entity, len(s.denseEntities))
	copy(out, s.denseEntities)
	return out
}
