package system

import (
	"log/slog"

	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// ChannelPlaySystem turns "add a Channel to an entity with a Track" into a
// play request targeting that entity.
type ChannelPlaySystem struct{}

func NewChannelPlaySystem() *ChannelPlaySystem {
	return &ChannelPlaySystem{}
}

func (s *ChannelPlaySystem) Update(w *ecs.World) {
	registry, ok := audioRegistry(w)
	if !ok {
		return
	}
	for _, e := range ecs.Added(w, component.ChannelComponent.Kind()) {
		channel, ok := ecs.Get(w, e, component.ChannelComponent.Kind())
		if !ok {
			continue
		}
		track, ok := ecs.Get(w, e, component.TrackComponent.Kind())
		if !ok {
			continue
		}
		if ecs.Has(w, e, component.AudioSourceComponent.Kind()) || ecs.Has(w, e, component.AudioSinkComponent.Kind()) {
			continue
		}

		evt := audio.NewPlayEvent(track.ID).WithEntity(e)
		if mode, ok := ecs.Get(w, e, component.DelayModeComponent.Kind()); ok {
			evt = evt.WithDelayMode(*mode)
		}
		if settings, ok := ecs.Get(w, e, component.PlaybackSettingsComponent.Kind()); ok {
			evt = evt.WithSettings(*settings)
		}
		if err := registry.Play(channel.ID, evt); err != nil {
			slog.Warn("channel play dropped", "entity", e, "track", track.ID, "error", err)
		}
	}
}
