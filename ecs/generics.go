package ecs

import "github.com/milk9111/audiocontroller/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return ErrNilComponent
	}
	return w.AddComponent(e, kind.ID(), value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach calls fn for every entity carrying the component. Entities may be
// created, destroyed or mutated from fn.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		value, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, value)
	}
}

// First returns the first entity carrying the component, used for
// singleton components.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, e := range w.store(kind.ID(), false).Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many entities carry the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// Added returns entities that gained the component since the running system
// last ran and still carry it.
func Added[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	store := w.store(kind.ID(), false)
	var out []Entity
	for _, e := range store.Entities() {
		if tick, ok := store.AddedAt(e); ok && tick > w.lastRun {
			out = append(out, e)
		}
	}
	return out
}

// Removed returns entities that lost the component since the running system
// last ran, including entities destroyed since then. Each entity is listed
// once.
func Removed[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	seen := make(map[Entity]struct{})
	for _, r := range w.removed[kind.ID()] {
		if r.tick <= w.lastRun {
			continue
		}
		if _, dup := seen[r.entity]; dup {
			continue
		}
		seen[r.entity] = struct{}{}
		out = append(out, r.entity)
	}
	return out
}

// ForEach2 calls fn for every entity carrying both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa.Len() == 0 || sb.Len() == 0 {
		return
	}
	// iterate the smaller set
	ents := sa.Entities()
	if sb.Len() < sa.Len() {
		ents = sb.Entities()
	}
	for _, e := range ents {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
