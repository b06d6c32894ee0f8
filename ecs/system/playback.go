package system

import (
	"log/slog"

	"github.com/samber/lo"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

// PlaybackSystem is the audio output stage. It starts sinks for loaded
// sources, applies the finish policy of sinks that ran out and closes sinks
// whose entity let go of them.
type PlaybackSystem struct {
	loader *assets.Loader
	sinks  audio.SinkFactory
	live   map[ecs.Entity]audio.Sink
}

func NewPlaybackSystem(loader *assets.Loader, sinks audio.SinkFactory) *PlaybackSystem {
	return &PlaybackSystem{
		loader: loader,
		sinks:  sinks,
		live:   make(map[ecs.Entity]audio.Sink),
	}
}

func (s *PlaybackSystem) Update(w *ecs.World) {
	if w == nil || s.loader == nil || s.sinks == nil {
		return
	}
	s.start(w)
	s.finish(w)
	s.release(w)
}

func (s *PlaybackSystem) start(w *ecs.World) {
	ecs.ForEach(w, component.AudioSourceComponent.Kind(), func(e ecs.Entity, src *component.AudioSource) {
		switch s.loader.State(src.Handle) {
		case assets.Loaded:
		case assets.Failed:
			slog.Warn("audio asset failed to load", "entity", e, "error", s.loader.Err(src.Handle))
			abandon(w, e)
			return
		default:
			return
		}

		clip, ok := s.loader.Clip(src.Handle)
		if !ok {
			return
		}
		settings := playbackSettings(w, e)
		sink, err := s.sinks.NewSink(clip, settings)
		if err != nil {
			slog.Warn("audio sink failed", "entity", e, "track", clip.Entry.Path, "error", err)
			abandon(w, e)
			return
		}

		if prev, ok := s.live[e]; ok {
			_ = prev.Close()
		}
		sink.SetVolume(lo.Clamp(settings.Volume, 0, 1))
		if !settings.Paused {
			sink.Play()
		}
		s.live[e] = sink
		ecs.Remove(w, e, component.AudioSourceComponent.Kind())
		// a replay re-adds the sink so it is picked up as new
		ecs.Remove(w, e, component.AudioSinkComponent.Kind())
		_ = ecs.Add(w, e, component.AudioSinkComponent.Kind(), &component.AudioSink{Sink: sink})
	})
}

func (s *PlaybackSystem) finish(w *ecs.World) {
	ecs.ForEach(w, component.AudioSinkComponent.Kind(), func(e ecs.Entity, out *component.AudioSink) {
		if out.Sink == nil || !out.Sink.Done() {
			return
		}
		switch playbackSettings(w, e).Mode {
		case audio.PlaybackLoop:
			if err := out.Sink.Rewind(); err != nil {
				slog.Warn("audio rewind failed", "entity", e, "error", err)
				return
			}
			out.Sink.Play()
		case audio.PlaybackDespawn:
			s.close(e)
			ecs.DestroyRecursive(w, e)
		case audio.PlaybackRemove:
			s.close(e)
			ecs.Remove(w, e, component.AudioSourceComponent.Kind())
			ecs.Remove(w, e, component.AudioSinkComponent.Kind())
			ecs.Remove(w, e, component.PlaybackSettingsComponent.Kind())
		}
	})
}

// release closes sinks whose entity was destroyed or whose AudioSink was
// removed or replaced from outside.
func (s *PlaybackSystem) release(w *ecs.World) {
	for e, sink := range s.live {
		out, ok := ecs.Get(w, e, component.AudioSinkComponent.Kind())
		if ok && out.Sink == sink {
			continue
		}
		_ = sink.Close()
		delete(s.live, e)
	}
}

func (s *PlaybackSystem) close(e ecs.Entity) {
	if sink, ok := s.live[e]; ok {
		_ = sink.Close()
		delete(s.live, e)
	}
}

// Live returns the number of sinks currently owned by the system.
func (s *PlaybackSystem) Live() int { return len(s.live) }

// abandon strips a play that can never start so it is not retried.
func abandon(w *ecs.World, e ecs.Entity) {
	ecs.Remove(w, e, component.AudioSourceComponent.Kind())
	ecs.Remove(w, e, component.TrackComponent.Kind())
	ecs.Remove(w, e, component.ChannelComponent.Kind())
	ecs.Remove(w, e, component.PlaybackSettingsComponent.Kind())
}
