package system

import "github.com/milk9111/audiocontroller/ecs"

// AudioCacheSystem advances every channel's debounce timers.
type AudioCacheSystem struct{}

func NewAudioCacheSystem() *AudioCacheSystem {
	return &AudioCacheSystem{}
}

func (s *AudioCacheSystem) Update(w *ecs.World) {
	registry, ok := audioRegistry(w)
	if !ok {
		return
	}
	dt := frameDelta(w).Delta
	if dt <= 0 {
		return
	}
	for _, ch := range registry.Channels() {
		ch.Cache.Tick(dt)
	}
}
