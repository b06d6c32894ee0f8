package system

import (
	"log/slog"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// PlayEventSystem drains every channel's play queue, applies the debounce
// decision and attaches the audio components for plays that go ahead.
type PlayEventSystem struct {
	loader *assets.Loader
}

func NewPlayEventSystem(loader *assets.Loader) *PlayEventSystem {
	return &PlayEventSystem{loader: loader}
}

func (s *PlayEventSystem) Update(w *ecs.World) {
	registry, ok := audioRegistry(w)
	if !ok || s.loader == nil {
		return
	}
	for _, ch := range registry.Channels() {
		for _, evt := range ch.Plays.Drain() {
			s.handle(w, ch, evt)
		}
	}
}

func (s *PlayEventSystem) handle(w *ecs.World, ch *audio.Channel, evt audio.PlayEvent) {
	entry, ok := s.loader.Manifest().Lookup(string(evt.Track()))
	if !ok {
		slog.Warn("play event for unknown track dropped", "channel", ch.ID, "track", evt.Track())
		return
	}
	// timers, overrides and the Track component are keyed by path, whether
	// the event named the track by path or by ID
	track := audio.TrackID(entry.Path)

	var target ecs.Entity
	raw, hasTarget := evt.Entity()
	if hasTarget {
		target = ecs.Entity(raw)
		if !ecs.IsAlive(w, target) {
			slog.Warn("play event target is gone", "channel", ch.ID, "track", track, "entity", target)
			return
		}
	}

	settings, ok := evt.Settings()
	if !ok {
		settings = ch.Settings.TrackSettings(track)
	}
	mode, ok := evt.DelayMode()
	if !ok {
		mode = ch.Settings.TrackDelayMode(track)
	}

	admission := ch.Cache.Admit(track, entry.Duration, mode, settings, evt.Forced())
	if !admission.Allowed {
		if hasTarget {
			s.deny(w, target, settings, evt.Child())
		}
		return
	}

	handle, ok := s.loader.Load(string(track))
	if !ok {
		return
	}

	dest := target
	switch {
	case !hasTarget:
		dest = ecs.CreateEntity(w)
	case evt.Child():
		dest = ecs.CreateEntity(w)
		if err := ecs.AddChild(w, target, dest); err != nil {
			slog.Warn("attach audio child", "parent", target, "error", err)
		}
	}

	_ = ecs.Add(w, dest, component.AudioSourceComponent.Kind(), &component.AudioSource{Handle: handle})
	_ = ecs.Add(w, dest, component.PlaybackSettingsComponent.Kind(), &settings)
	_ = ecs.Add(w, dest, component.TrackComponent.Kind(), &component.Track{ID: track})
	_ = ecs.Add(w, dest, component.ChannelComponent.Kind(), &component.Channel{ID: ch.ID})
}

// deny applies the denied play's finish policy to its target. A denied child
// spawn never despawns its parent.
func (s *PlayEventSystem) deny(w *ecs.World, target ecs.Entity, settings audio.PlaybackSettings, child bool) {
	switch settings.Mode {
	case audio.PlaybackDespawn:
		if !child {
			ecs.DestroyRecursive(w, target)
		}
	case audio.PlaybackRemove:
		ecs.Remove(w, target, component.ChannelComponent.Kind())
		ecs.Remove(w, target, component.PlaybackSettingsComponent.Kind())
		ecs.Remove(w, target, component.TrackComponent.Kind())
	}
}
