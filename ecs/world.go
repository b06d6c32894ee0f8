package ecs

import (
	"fmt"

	"github.com/milk9111/audiocontroller/ecs/component"
)

type removal struct {
	entity Entity
	tick   uint64
}

// World owns entities, their components and the parent/child hierarchy.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	removed  map[component.ComponentID][]removal

	parents  map[Entity]Entity
	children map[Entity][]Entity

	// tick advances once per scheduled system run. lastRun is the tick at
	// which the currently running system previously ran.
	tick    uint64
	lastRun uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		removed:  make(map[component.ComponentID][]removal),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
		tick:     1,
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component from e, detaches it from the
// hierarchy and frees its id. Children of e become roots.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for id, store := range w.stores {
		if store.Remove(e) {
			w.recordRemoval(id, e)
		}
	}
	w.detach(e)
	for _, child := range w.children[e] {
		delete(w.parents, child)
	}
	delete(w.children, e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// Tick returns the current change tick.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent inserts or replaces a component value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return ErrInvalidComponentKind
	}
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to %v: %w", component.Name(id), e, ErrEntityNotAlive)
	}
	if value == nil {
		return fmt.Errorf("add %s to %v: %w", component.Name(id), e, ErrNilComponent)
	}
	w.store(id, true).Set(e, value, w.tick)
	return nil
}

// RemoveComponent deletes a component and records the removal.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	if !w.store(id, false).Remove(e) {
		return false
	}
	w.recordRemoval(id, e)
	return true
}

// GetComponent returns the raw component value.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e)
	return v, v != nil
}

// HasComponent reports whether e carries the component.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

func (w *World) recordRemoval(id component.ComponentID, e Entity) {
	w.removed[id] = append(w.removed[id], removal{entity: e, tick: w.tick})
}

// pruneRemovals drops removal records every system has already observed.
func (w *World) pruneRemovals(seenBy uint64) {
	for id, list := range w.removed {
		kept := list[:0]
		for _, r := range list {
			if r.tick > seenBy {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(w.removed, id)
			continue
		}
		w.removed[id] = kept
	}
}
