package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

type scheduled struct {
	system  System
	lastRun uint64
}

// Scheduler runs systems in insertion order and keeps the per-system change
// ticks used by Added and Removed.
type Scheduler struct {
	systems []*scheduled
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, &scheduled{system: system})
}

// Update runs every system once.
func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, st := range s.systems {
		w.tick++
		w.lastRun = st.lastRun
		st.system.Update(w)
		st.lastRun = w.tick
	}
	// Changes made between frames get a tick newer than any system run.
	w.tick++
	w.lastRun = w.tick

	oldest := w.tick
	for _, st := range s.systems {
		if st.lastRun < oldest {
			oldest = st.lastRun
		}
	}
	w.pruneRemovals(oldest)
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	for _, st := range s.systems {
		systems = append(systems, st.system)
	}
	return systems
}
