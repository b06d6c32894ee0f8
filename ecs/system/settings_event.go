package system

import (
	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
)

// SettingsEventSystem applies queued settings events to their channels.
// Track-scoped events naming a manifest ID are re-keyed to the track path;
// tracks the manifest does not know yet keep the name they were given.
type SettingsEventSystem struct {
	loader *assets.Loader
}

func NewSettingsEventSystem(loader *assets.Loader) *SettingsEventSystem {
	return &SettingsEventSystem{loader: loader}
}

func (s *SettingsEventSystem) Update(w *ecs.World) {
	registry, ok := audioRegistry(w)
	if !ok {
		return
	}
	for _, ch := range registry.Channels() {
		for _, evt := range ch.Updates.Drain() {
			s.resolve(evt).Apply(ch.Settings)
		}
	}
}

func (s *SettingsEventSystem) resolve(evt audio.SettingsEvent) audio.SettingsEvent {
	id, ok := evt.Track()
	if !ok || s.loader == nil {
		return evt
	}
	entry, ok := s.loader.Manifest().Lookup(string(id))
	if !ok {
		return evt
	}
	return evt.WithTrack(audio.TrackID(entry.Path))
}
