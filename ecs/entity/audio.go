package entity

import (
	"fmt"

	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
	"github.com/milk9111/audiocontroller/prefabs"
)

// NewAudioEmitter spawns an entity that plays spec's track on its channel.
// Playback starts through the channel play system on the next update.
func NewAudioEmitter(w *ecs.World, spec prefabs.AudioSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("audio emitter: world is nil")
	}
	if spec.Track == "" {
		return 0, fmt.Errorf("audio emitter %q: no track", spec.Name)
	}

	ent := ecs.CreateEntity(w)
	if err := addEmitter(w, ent, spec); err != nil {
		ecs.DestroyEntity(w, ent)
		return 0, fmt.Errorf("audio emitter %q: %w", spec.Name, err)
	}
	return ent, nil
}

func addEmitter(w *ecs.World, ent ecs.Entity, spec prefabs.AudioSpec) error {
	if spec.Playback != nil {
		settings := spec.Playback.Apply(audio.SettingsOnce)
		if err := ecs.Add(w, ent, component.PlaybackSettingsComponent.Kind(), &settings); err != nil {
			return err
		}
	}
	if spec.DelayMode != nil {
		mode := *spec.DelayMode
		if err := ecs.Add(w, ent, component.DelayModeComponent.Kind(), &mode); err != nil {
			return err
		}
	}
	if err := ecs.Add(w, ent, component.TrackComponent.Kind(), &component.Track{ID: audio.TrackID(spec.Track)}); err != nil {
		return err
	}
	// without a channel the entity lands on the global channel
	if spec.Channel != "" {
		if err := ecs.Add(w, ent, component.ChannelComponent.Kind(), &component.Channel{ID: audio.ChannelID(spec.Channel)}); err != nil {
			return err
		}
	}
	return nil
}
