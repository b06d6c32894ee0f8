package ecs

// AddChild attaches child under parent, detaching it from any previous
// parent first.
func AddChild(w *World, parent, child Entity) error {
	if w == nil || !w.entities.isAlive(parent) || !w.entities.isAlive(child) {
		return ErrEntityNotAlive
	}
	if parent == child {
		return ErrSelfParent
	}
	for p, ok := w.parents[parent]; ok; p, ok = w.parents[p] {
		if p == child {
			return ErrHierarchyCycle
		}
	}
	w.detach(child)
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// Parent returns the parent of e, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of e's children.
func Children(w *World, e Entity) []Entity {
	if w == nil || len(w.children[e]) == 0 {
		return nil
	}
	out := make([]Entity, len(w.children[e]))
	copy(out, w.children[e])
	return out
}

// DestroyRecursive destroys e and all of its descendants. It returns the
// number of entities destroyed.
func DestroyRecursive(w *World, e Entity) int {
	if w == nil || !w.entities.isAlive(e) {
		return 0
	}
	n := 0
	for _, child := range Children(w, e) {
		n += DestroyRecursive(w, child)
	}
	if DestroyEntity(w, e) {
		n++
	}
	return n
}

func (w *World) detach(child Entity) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, s := range siblings {
		if s == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(w.children, parent)
		return
	}
	w.children[parent] = siblings
}
