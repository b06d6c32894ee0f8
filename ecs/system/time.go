package system

import (
	"time"

	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// DefaultStep matches ebiten's default 60 TPS update rate.
const DefaultStep = time.Second / 60

// TimeSystem advances the FrameTime singleton by a fixed step per update.
type TimeSystem struct {
	step time.Duration
}

func NewTimeSystem(step time.Duration) *TimeSystem {
	if step <= 0 {
		step = DefaultStep
	}
	return &TimeSystem{step: step}
}

func (s *TimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := ecs.First(w, component.FrameTimeComponent.Kind())
	if !ok {
		ent = ecs.CreateEntity(w)
		_ = ecs.Add(w, ent, component.FrameTimeComponent.Kind(), &component.FrameTime{})
	}
	ft, ok := ecs.Get(w, ent, component.FrameTimeComponent.Kind())
	if !ok {
		return
	}
	ft.Delta = s.step
	ft.Elapsed += s.step
	ft.Frame++
}
