package system

import (
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// RogueAudioSystem puts audio entities spawned without a channel on the
// global channel so they follow the global volume.
type RogueAudioSystem struct{}

func NewRogueAudioSystem() *RogueAudioSystem {
	return &RogueAudioSystem{}
}

func (s *RogueAudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	candidates := append(
		ecs.Added(w, component.AudioSinkComponent.Kind()),
		ecs.Added(w, component.TrackComponent.Kind())...,
	)
	for _, e := range candidates {
		if !ecs.IsAlive(w, e) || ecs.Has(w, e, component.ChannelComponent.Kind()) {
			continue
		}
		_ = ecs.Add(w, e, component.ChannelComponent.Kind(), &component.Channel{ID: audio.GlobalChannel})
	}
}
