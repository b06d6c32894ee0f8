package system

import (
	"testing"
	"time"

	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
)

type volumeSink struct {
	volume float64
}

func (s *volumeSink) Play() {}
func (s *volumeSink) Pause() {}
func (s *volumeSink) IsPaused() bool { return false }
func (s *volumeSink) Done() bool { return false }
func (s *volumeSink) Volume() float64 { return s.volume }
func (s *volumeSink) SetVolume(v float64) { s.volume = v }
func (s *volumeSink) Rewind() error { return nil }
func (s *volumeSink) Close() error { return nil }

func newAudioWorld(t *testing.T, channels ...audio.ChannelID) (*ecs.World, *audio.Registry) {
	t.Helper()
	w := ecs.NewWorld()
	registry := audio.NewRegistry()
	for _, id := range append([]audio.ChannelID{audio.GlobalChannel}, channels...) {
		if _, err := registry.Register(id); err != nil {
			t.Fatal(err)
		}
	}
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.AudioChannelsComponent.Kind(), &component.AudioChannels{Registry: registry}); err != nil {
		t.Fatal(err)
	}
	return w, registry
}

func TestTimeSystem(t *testing.T) {
	w := ecs.NewWorld()
	s := ecs.NewScheduler(NewTimeSystem(0))
	for i := 0; i < 3; i++ {
		s.Update(w)
	}
	ft := frameDelta(w)
	if ft.Delta != DefaultStep || ft.Elapsed != 3*DefaultStep || ft.Frame != 3 {
		t.Fatalf("unexpected frame time %+v", ft)
	}
	if ecs.Count(w, component.FrameTimeComponent.Kind()) != 1 {
		t.Fatalf("frame time should be a singleton")
	}
}

func TestAudioCacheSystemTicksEveryChannel(t *testing.T) {
	w, registry := newAudioWorld(t, "sfx")
	for _, ch := range registry.Channels() {
		ch.Cache.SetEntry("a.wav", 250*time.Millisecond)
	}
	s := ecs.NewScheduler(NewTimeSystem(100*time.Millisecond), NewAudioCacheSystem())
	s.Update(w)
	s.Update(w)

	for _, ch := range registry.Channels() {
		if got := ch.Cache.Remaining("a.wav"); got != 50*time.Millisecond {
			t.Fatalf("%s: expected 50ms left, got %v", ch.ID, got)
		}
	}
	s.Update(w)
	sfx, _ := registry.Channel("sfx")
	if !sfx.Cache.CanPlay("a.wav") {
		t.Fatalf("timer should have elapsed")
	}
}

func TestAudioCacheSystemWithoutClock(t *testing.T) {
	w, registry := newAudioWorld(t)
	registry.Global().Cache.SetEntry("a.wav", time.Second)
	ecs.NewScheduler(NewAudioCacheSystem()).Update(w)
	if registry.Global().Cache.Remaining("a.wav") != time.Second {
		t.Fatalf("no clock means no progress")
	}
}

func TestSettingsEventSystem(t *testing.T) {
	w, registry := newAudioWorld(t, "sfx")
	if err := registry.Configure("sfx", audio.NewSettingsEvent().WithVolume(0.3)); err != nil {
		t.Fatal(err)
	}
	if err := registry.Configure("sfx", audio.NewSettingsEvent().WithTrack("a.wav").WithDelayMode(audio.Immediate())); err != nil {
		t.Fatal(err)
	}
	ecs.NewScheduler(NewSettingsEventSystem(nil)).Update(w)

	sfx, _ := registry.Channel("sfx")
	if sfx.Settings.Volume() != 0.3 {
		t.Fatalf("unexpected volume %v", sfx.Settings.Volume())
	}
	if sfx.Settings.TrackDelayMode("a.wav") != audio.Immediate() {
		t.Fatalf("unexpected delay mode")
	}
	if sfx.Updates.Len() != 0 {
		t.Fatalf("queue should be drained")
	}
	if registry.Global().Settings.Volume() != 1 {
		t.Fatalf("global must be untouched")
	}
}

func TestVolumeSystem(t *testing.T) {
	w, registry := newAudioWorld(t, "sfx", "music")
	sfx, _ := registry.Channel("sfx")
	music, _ := registry.Channel("music")
	sfx.Settings.SetVolume(0.5)

	addSink := func(channel audio.ChannelID, volume float64) *volumeSink {
		sink := &volumeSink{volume: volume}
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ChannelComponent.Kind(), &component.Channel{ID: channel})
		_ = ecs.Add(w, e, component.TrackComponent.Kind(), &component.Track{ID: "a.wav"})
		_ = ecs.Add(w, e, component.AudioSinkComponent.Kind(), &component.AudioSink{Sink: sink})
		return sink
	}

	s := ecs.NewScheduler(NewVolumeSystem())
	fx := addSink("sfx", 0.8)
	bg := addSink("music", 1)
	s.Update(w)
	if fx.volume != 0.4 || bg.volume != 1 {
		t.Fatalf("on insert: fx=%v bg=%v", fx.volume, bg.volume)
	}

	s.Update(w)
	if fx.volume != 0.4 {
		t.Fatalf("unchanged settings must not rescale, got %v", fx.volume)
	}

	music.Settings.SetVolume(0.5)
	s.Update(w)
	if bg.volume != 0.5 || fx.volume != 0.4 {
		t.Fatalf("music change: fx=%v bg=%v", fx.volume, bg.volume)
	}

	registry.Global().Settings.SetVolume(0.5)
	late := addSink("sfx", 1)
	s.Update(w)
	if fx.volume != 0.25 || bg.volume != 0.25 {
		t.Fatalf("global change: fx=%v bg=%v", fx.volume, bg.volume)
	}
	if late.volume != 0.25 {
		t.Fatalf("sink added during a change is scaled once, got %v", late.volume)
	}
}

func TestRogueAudioSystem(t *testing.T) {
	w, _ := newAudioWorld(t, "sfx")
	rogue := ecs.CreateEntity(w)
	_ = ecs.Add(w, rogue, component.AudioSinkComponent.Kind(), &component.AudioSink{Sink: &volumeSink{}})
	owned := ecs.CreateEntity(w)
	_ = ecs.Add(w, owned, component.TrackComponent.Kind(), &component.Track{ID: "a.wav"})
	_ = ecs.Add(w, owned, component.ChannelComponent.Kind(), &component.Channel{ID: "sfx"})

	ecs.NewScheduler(NewRogueAudioSystem()).Update(w)

	if ch, ok := ecs.Get(w, rogue, component.ChannelComponent.Kind()); !ok || ch.ID != audio.GlobalChannel {
		t.Fatalf("rogue sink should join the global channel")
	}
	if ch, _ := ecs.Get(w, owned, component.ChannelComponent.Kind()); ch.ID != "sfx" {
		t.Fatalf("existing channel must be kept, got %q", ch.ID)
	}
}
