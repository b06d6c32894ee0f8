package entity

import (
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/prefabs"
)

// NewAmbience spawns one emitter per entry of ambience.yaml.
func NewAmbience(w *ecs.World) ([]ecs.Entity, error) {
	spec, err := prefabs.LoadAmbienceSpec()
	if err != nil {
		return nil, err
	}
	ents := make([]ecs.Entity, 0, len(spec.Audio))
	for _, a := range spec.Audio {
		ent, err := NewAudioEmitter(w, a)
		if err != nil {
			for _, e := range ents {
				ecs.DestroyEntity(w, e)
			}
			return nil, err
		}
		ents = append(ents, ent)
	}
	return ents, nil
}
