package system

import (
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

func audioRegistry(w *ecs.World) (*audio.Registry, bool) {
	ent, ok := ecs.First(w, component.AudioChannelsComponent.Kind())
	if !ok {
		return nil, false
	}
	channels, ok := ecs.Get(w, ent, component.AudioChannelsComponent.Kind())
	if !ok || channels.Registry == nil {
		return nil, false
	}
	return channels.Registry, true
}

func frameDelta(w *ecs.World) (ft component.FrameTime) {
	ent, ok := ecs.First(w, component.FrameTimeComponent.Kind())
	if !ok {
		return ft
	}
	if t, ok := ecs.Get(w, ent, component.FrameTimeComponent.Kind()); ok {
		ft = *t
	}
	return ft
}

func playbackSettings(w *ecs.World, e ecs.Entity) audio.PlaybackSettings {
	if s, ok := ecs.Get(w, e, component.PlaybackSettingsComponent.Kind()); ok {
		return *s
	}
	return audio.SettingsOnce
}
