package system

import (
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

type volumeRevision struct {
	channel uint64
	global  uint64
}

// VolumeSystem keeps sink volumes in line with their channel and the global
// channel. New sinks are scaled once on arrival; every sink of a channel is
// recomputed when that channel's or the global settings change.
type VolumeSystem struct {
	seen map[audio.ChannelID]volumeRevision
}

func NewVolumeSystem() *VolumeSystem {
	return &VolumeSystem{seen: make(map[audio.ChannelID]volumeRevision)}
}

func (s *VolumeSystem) Update(w *ecs.World) {
	registry, ok := audioRegistry(w)
	if !ok {
		return
	}
	global := registry.Global()
	var globalSettings *audio.ChannelSettings
	var globalRev uint64
	if global != nil {
		globalSettings = global.Settings
		globalRev = global.Settings.Revision()
	}

	changed := make(map[audio.ChannelID]bool)
	for _, ch := range registry.Channels() {
		rev := volumeRevision{channel: ch.Settings.Revision(), global: globalRev}
		if prev, ok := s.seen[ch.ID]; ok && prev != rev {
			changed[ch.ID] = true
		}
		s.seen[ch.ID] = rev
	}

	// Sinks scaled on arrival already reflect this frame's settings.
	fresh := make(map[ecs.Entity]struct{})

	for _, e := range ecs.Added(w, component.AudioSinkComponent.Kind()) {
		out, ok := ecs.Get(w, e, component.AudioSinkComponent.Kind())
		if !ok || out.Sink == nil {
			continue
		}
		channel, ok := ecs.Get(w, e, component.ChannelComponent.Kind())
		if !ok {
			continue
		}
		ch, ok := registry.Channel(channel.ID)
		if !ok {
			continue
		}
		out.Sink.SetVolume(audio.SinkVolume(ch.Settings, globalSettings, out.Sink.Volume()))
		fresh[e] = struct{}{}
	}

	if len(changed) == 0 {
		return
	}
	ecs.ForEach2(w, component.AudioSinkComponent.Kind(), component.ChannelComponent.Kind(), func(e ecs.Entity, out *component.AudioSink, channel *component.Channel) {
		if out.Sink == nil || !changed[channel.ID] {
			return
		}
		if _, ok := fresh[e]; ok {
			return
		}
		ch, ok := registry.Channel(channel.ID)
		if !ok {
			return
		}
		var track audio.TrackID
		if t, ok := ecs.Get(w, e, component.TrackComponent.Kind()); ok {
			track = t.ID
		}
		out.Sink.SetVolume(audio.SinkVolume(ch.Settings, globalSettings, ch.Settings.TrackSettings(track).Volume))
	})
}
