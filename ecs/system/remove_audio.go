package system

import (
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// RemoveAudioSystem clears the playback request of entities whose sink was
// removed, so re-adding a Channel later plays the track again.
type RemoveAudioSystem struct{}

func NewRemoveAudioSystem() *RemoveAudioSystem {
	return &RemoveAudioSystem{}
}

func (s *RemoveAudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range ecs.Removed(w, component.AudioSinkComponent.Kind()) {
		if !ecs.IsAlive(w, e) || ecs.Has(w, e, component.AudioSinkComponent.Kind()) {
			continue
		}
		if !ecs.Has(w, e, component.TrackComponent.Kind()) || !ecs.Has(w, e, component.ChannelComponent.Kind()) {
			continue
		}
		ecs.Remove(w, e, component.TrackComponent.Kind())
		ecs.Remove(w, e, component.ChannelComponent.Kind())
		ecs.Remove(w, e, component.DelayModeComponent.Kind())
	}
}
