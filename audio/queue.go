package audio

// Queue is a typed FIFO of channel events. Producers push during a frame and
// the consuming system drains it once per run.
type Queue[T any] struct {
	items []T
}

// Push adds an event.
func (q *Queue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
