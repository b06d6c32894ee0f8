package controller

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
	"github.com/milk9111/audiocontroller/prefabs"
)

const step = 100 * time.Millisecond

type fakeSink struct {
	track   string
	playing bool
	paused  bool
	done    bool
	closed  bool
	volume  float64
	rewinds int
}

func (s *fakeSink) Play() { s.playing, s.paused, s.done = true, false, false }
func (s *fakeSink) Pause() { s.playing, s.paused = false, true }
func (s *fakeSink) IsPaused() bool { return s.paused }
func (s *fakeSink) Done() bool { return s.done }
func (s *fakeSink) Volume() float64 { return s.volume }
func (s *fakeSink) SetVolume(v float64) { s.volume = v }
func (s *fakeSink) Rewind() error { s.rewinds++; s.done = false; return nil }
func (s *fakeSink) Close() error { s.closed = true; s.playing = false; return nil }

type fakeFactory struct {
	sinks []*fakeSink
}

func (f *fakeFactory) NewSink(clip *assets.Clip, _ audio.PlaybackSettings) (audio.Sink, error) {
	s := &fakeSink{track: clip.Entry.Path}
	f.sinks = append(f.sinks, s)
	return s, nil
}

type harness struct {
	t      *testing.T
	world  *ecs.World
	sched  *ecs.Scheduler
	ctrl   *Controller
	sinks  *fakeFactory
	loader *assets.Loader
}

// newHarness preloads every entry so plays start on the frame they are
// handled. Entries whose path contains "missing" have no file.
func newHarness(t *testing.T, entries ...assets.Entry) *harness {
	t.Helper()
	files := fstest.MapFS{}
	for _, e := range entries {
		if !strings.Contains(e.Path, "missing") {
			files[e.Path] = &fstest.MapFile{Data: []byte(e.Path)}
		}
	}
	loader := assets.NewLoader(files, assets.NewManifest(time.Second, entries...))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, e := range entries {
		h, _ := loader.Load(e.Path)
		_ = loader.Wait(ctx, h)
	}

	w := ecs.NewWorld()
	s := ecs.NewScheduler()
	sinks := &fakeFactory{}
	ctrl, err := Install(w, s, Options{Loader: loader, Sinks: sinks, Step: step})
	if err != nil {
		t.Fatal(err)
	}
	return &harness{t: t, world: w, sched: s, ctrl: ctrl, sinks: sinks, loader: loader}
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.sched.Update(h.world)
	}
}

func (h *harness) play(channel audio.ChannelID, evt audio.PlayEvent) {
	h.t.Helper()
	if err := h.ctrl.Play(channel, evt); err != nil {
		h.t.Fatal(err)
	}
}

func (h *harness) configure(channel audio.ChannelID, evt audio.SettingsEvent) {
	h.t.Helper()
	if err := h.ctrl.Configure(channel, evt); err != nil {
		h.t.Fatal(err)
	}
}

func (h *harness) sinkOf(e ecs.Entity) *fakeSink {
	h.t.Helper()
	out, ok := ecs.Get(h.world, e, component.AudioSinkComponent.Kind())
	if !ok {
		h.t.Fatalf("entity %v has no sink", e)
	}
	return out.Sink.(*fakeSink)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

var (
	fire  = assets.Entry{Path: "sfx/fire.ogg", Duration: time.Second}
	spray = assets.Entry{Path: "sfx/spray.ogg", Duration: 500 * time.Millisecond}
	theme = assets.Entry{Path: "music/theme.ogg", Duration: 4 * time.Second}
	lost  = assets.Entry{Path: "sfx/missing.ogg", Duration: time.Second}
)

func TestInstall(t *testing.T) {
	h := newHarness(t, fire)
	if ids := h.ctrl.Channels(); len(ids) != 1 || ids[0] != audio.GlobalChannel {
		t.Fatalf("expected only the global channel, got %v", ids)
	}
	if len(h.sched.Systems()) != 9 {
		t.Fatalf("expected 9 audio systems, got %d", len(h.sched.Systems()))
	}
	if _, err := Install(h.world, ecs.NewScheduler(), Options{Loader: h.loader}); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
	if _, err := Install(ecs.NewWorld(), ecs.NewScheduler(), Options{}); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("expected ErrNoLoader, got %v", err)
	}
}

func TestRegisterChannel(t *testing.T) {
	h := newHarness(t, fire)
	if err := h.ctrl.RegisterChannel("sfx"); err != nil {
		t.Fatal(err)
	}
	if err := h.ctrl.RegisterChannel("sfx"); !errors.Is(err, audio.ErrChannelRegistered) {
		t.Fatalf("expected ErrChannelRegistered, got %v", err)
	}
	if err := h.ctrl.RegisterChannel(audio.GlobalChannel); !errors.Is(err, audio.ErrChannelRegistered) {
		t.Fatalf("global is registered by Install, got %v", err)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("MustRegisterChannel should panic on a duplicate")
			}
		}()
		h.ctrl.MustRegisterChannel("sfx")
	}()

	if err := h.ctrl.Play("voice", audio.NewPlayEvent("sfx/fire.ogg")); !errors.Is(err, audio.ErrUnknownChannel) {
		t.Fatalf("expected ErrUnknownChannel, got %v", err)
	}
	if err := h.ctrl.Configure("voice", audio.NewSettingsEvent()); !errors.Is(err, audio.ErrUnknownChannel) {
		t.Fatalf("expected ErrUnknownChannel, got %v", err)
	}
}

func TestPlaySpawnsEntity(t *testing.T) {
	h := newHarness(t, fire)
	h.ctrl.MustRegisterChannel("sfx")

	h.play("sfx", audio.NewPlayEvent("sfx/fire.ogg"))
	h.frames(1)

	if len(h.sinks.sinks) != 1 {
		t.Fatalf("expected one sink, got %d", len(h.sinks.sinks))
	}
	e, ok := ecs.First(h.world, component.AudioSinkComponent.Kind())
	if !ok {
		t.Fatalf("expected an entity with a sink")
	}
	sink := h.sinkOf(e)
	if !sink.playing || sink.track != "sfx/fire.ogg" {
		t.Fatalf("unexpected sink %+v", sink)
	}
	if ch, _ := ecs.Get(h.world, e, component.ChannelComponent.Kind()); ch.ID != "sfx" {
		t.Fatalf("expected sfx channel, got %q", ch.ID)
	}
	if ecs.Has(h.world, e, component.AudioSourceComponent.Kind()) {
		t.Fatalf("source should be consumed once the sink starts")
	}
	if h.ctrl.ActiveSinks() != 1 {
		t.Fatalf("expected one live sink")
	}
}

func TestPlayUnknownTrackDropped(t *testing.T) {
	h := newHarness(t, fire)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/nope.ogg"))
	h.frames(1)
	if ecs.Count(h.world, component.TrackComponent.Kind()) != 0 {
		t.Fatalf("unknown track should not spawn anything")
	}
	if cache, _ := h.ctrl.Cache(audio.GlobalChannel); cache.Len() != 0 {
		t.Fatalf("unknown track should not start a timer")
	}
}

func TestDebounce(t *testing.T) {
	cases := []struct {
		name      string
		mode      audio.DelayMode
		force     bool
		sameFrame int
		// frames to wait before the second burst
		wait      int
		wantSinks int
	}{
		{"wait_blocks_same_frame", audio.Wait(), false, 3, 0, 1},
		{"wait_reopens_after_track_length", audio.Wait(), false, 1, 10, 2},
		{"wait_still_closed_before_length", audio.Wait(), false, 1, 9, 1},
		{"percent_halves_the_wait", audio.Percent(50), false, 1, 5, 2},
		{"milliseconds_shorten_the_wait", audio.Milliseconds(-800), false, 1, 2, 2},
		{"immediate_always_plays", audio.Immediate(), false, 3, 0, 3},
		{"force_always_plays", audio.Wait(), true, 3, 0, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, fire)
			evt := audio.NewPlayEvent("sfx/fire.ogg").WithDelayMode(c.mode)
			if c.force {
				evt = evt.WithForce()
			}
			for i := 0; i < c.sameFrame; i++ {
				h.play(audio.GlobalChannel, evt)
			}
			h.frames(1)
			if c.wait > 0 {
				h.frames(c.wait - 1)
				h.play(audio.GlobalChannel, evt)
				h.frames(1)
			}
			if got := len(h.sinks.sinks); got != c.wantSinks {
				t.Fatalf("expected %d sinks, got %d", c.wantSinks, got)
			}
		})
	}
}

func TestDebounceUsesSpeed(t *testing.T) {
	h := newHarness(t, fire)
	evt := audio.NewPlayEvent("sfx/fire.ogg").WithSettings(audio.SettingsOnce.WithSpeed(2))
	h.play(audio.GlobalChannel, evt)
	h.frames(1)
	cache, _ := h.ctrl.Cache(audio.GlobalChannel)
	if got := cache.Remaining("sfx/fire.ogg"); got != 500*time.Millisecond {
		t.Fatalf("double speed should halve the delay, got %v", got)
	}
}

func TestImmediateKeepsRunningTimer(t *testing.T) {
	h := newHarness(t, fire)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg"))
	h.frames(3)
	cache, _ := h.ctrl.Cache(audio.GlobalChannel)
	before := cache.Remaining("sfx/fire.ogg")

	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg").WithDelayMode(audio.Immediate()))
	h.frames(1)
	if len(h.sinks.sinks) != 2 {
		t.Fatalf("immediate play should go ahead")
	}
	if got := cache.Remaining("sfx/fire.ogg"); got != before-step {
		t.Fatalf("immediate play must not restart a running timer: %v -> %v", before, got)
	}
}

func TestDeniedPlayAppliesPolicyToTarget(t *testing.T) {
	cases := []struct {
		name      string
		settings  audio.PlaybackSettings
		child     bool
		wantAlive bool
		wantTrack bool
	}{
		{"despawn", audio.SettingsDespawn, false, false, true},
		{"despawn_child_keeps_parent", audio.SettingsDespawn, true, true, true},
		{"remove", audio.SettingsRemove, false, true, false},
		{"remove_child", audio.SettingsRemove, true, true, false},
		{"once_untouched", audio.SettingsOnce, false, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, fire)
			target := ecs.CreateEntity(h.world)
			_ = ecs.Add(h.world, target, component.TrackComponent.Kind(), &component.Track{ID: "sfx/fire.ogg"})
			_ = ecs.Add(h.world, target, component.PlaybackSettingsComponent.Kind(), &c.settings)
			// the entity already carries a channel so the track alone does not trigger a play
			_ = ecs.Add(h.world, target, component.AudioSinkComponent.Kind(), &component.AudioSink{})
			_ = ecs.Add(h.world, target, component.ChannelComponent.Kind(), &component.Channel{ID: audio.GlobalChannel})

			h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg"))
			denied := audio.NewPlayEvent("sfx/fire.ogg").WithSettings(c.settings)
			if c.child {
				denied = denied.WithParent(target)
			} else {
				denied = denied.WithEntity(target)
			}
			h.play(audio.GlobalChannel, denied)
			h.frames(1)

			if got := ecs.IsAlive(h.world, target); got != c.wantAlive {
				t.Fatalf("alive = %v, want %v", got, c.wantAlive)
			}
			if !c.wantAlive {
				return
			}
			if got := ecs.Has(h.world, target, component.TrackComponent.Kind()); got != c.wantTrack {
				t.Fatalf("has track = %v, want %v", got, c.wantTrack)
			}
			if len(ecs.Children(h.world, target)) != 0 {
				t.Fatalf("denied child play should not spawn a child")
			}
		})
	}
}

func TestPlayTargets(t *testing.T) {
	h := newHarness(t, fire, spray)
	parent := ecs.CreateEntity(h.world)
	target := ecs.CreateEntity(h.world)

	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg").WithParent(parent))
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/spray.ogg").WithEntity(target))
	h.frames(1)

	children := ecs.Children(h.world, parent)
	if len(children) != 1 {
		t.Fatalf("expected one audio child, got %v", children)
	}
	if h.sinkOf(children[0]).track != "sfx/fire.ogg" {
		t.Fatalf("child should play fire")
	}
	if h.sinkOf(target).track != "sfx/spray.ogg" {
		t.Fatalf("target should play spray")
	}

	dead := ecs.CreateEntity(h.world)
	ecs.DestroyEntity(h.world, dead)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/spray.ogg").WithForce().WithEntity(dead))
	h.frames(1)
	if len(h.sinks.sinks) != 2 {
		t.Fatalf("play on a dead entity should be dropped")
	}
}

func TestChannelComponentTriggersPlay(t *testing.T) {
	h := newHarness(t, fire, spray)
	h.ctrl.MustRegisterChannel("sfx")

	e := ecs.CreateEntity(h.world)
	_ = ecs.Add(h.world, e, component.TrackComponent.Kind(), &component.Track{ID: "sfx/fire.ogg"})
	loop := audio.SettingsLoop
	_ = ecs.Add(h.world, e, component.PlaybackSettingsComponent.Kind(), &loop)
	_ = ecs.Add(h.world, e, component.ChannelComponent.Kind(), &component.Channel{ID: "sfx"})
	h.frames(1)

	sink := h.sinkOf(e)
	if !sink.playing {
		t.Fatalf("adding a channel should start the track")
	}
	if s, _ := ecs.Get(h.world, e, component.PlaybackSettingsComponent.Kind()); s.Mode != audio.PlaybackLoop {
		t.Fatalf("entity settings should be used, got %+v", s)
	}

	h.frames(3)
	if len(h.sinks.sinks) != 1 {
		t.Fatalf("a playing entity should not be re-triggered")
	}

	rogue := ecs.CreateEntity(h.world)
	_ = ecs.Add(h.world, rogue, component.TrackComponent.Kind(), &component.Track{ID: "sfx/spray.ogg"})
	h.frames(1)
	ch, ok := ecs.Get(h.world, rogue, component.ChannelComponent.Kind())
	if !ok || ch.ID != audio.GlobalChannel {
		t.Fatalf("rogue track should land on the global channel")
	}
	if !h.sinkOf(rogue).playing {
		t.Fatalf("rogue track should play")
	}
}

func TestFinishPolicies(t *testing.T) {
	cases := []struct {
		name      string
		settings  audio.PlaybackSettings
		wantAlive bool
		wantSink  bool
		wantTrack bool
	}{
		{"once", audio.SettingsOnce, true, true, true},
		{"loop", audio.SettingsLoop, true, true, true},
		{"despawn", audio.SettingsDespawn, false, false, false},
		{"remove", audio.SettingsRemove, true, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, fire)
			e := ecs.CreateEntity(h.world)
			child := ecs.CreateEntity(h.world)
			_ = ecs.AddChild(h.world, e, child)
			h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg").WithEntity(e).WithSettings(c.settings))
			h.frames(1)

			sink := h.sinkOf(e)
			sink.done = true
			// one frame for the policy, one for the removal follow-up
			h.frames(2)

			if got := ecs.IsAlive(h.world, e); got != c.wantAlive {
				t.Fatalf("alive = %v, want %v", got, c.wantAlive)
			}
			if ecs.IsAlive(h.world, child) != c.wantAlive {
				t.Fatalf("children follow their parent")
			}
			if got := ecs.Has(h.world, e, component.AudioSinkComponent.Kind()); got != c.wantSink {
				t.Fatalf("has sink = %v, want %v", got, c.wantSink)
			}
			if got := ecs.Has(h.world, e, component.TrackComponent.Kind()); got != c.wantTrack {
				t.Fatalf("has track = %v, want %v", got, c.wantTrack)
			}
			if c.wantSink == sink.closed {
				t.Fatalf("sink closed = %v with sink kept = %v", sink.closed, c.wantSink)
			}
			if c.settings.Mode == audio.PlaybackLoop && (sink.rewinds != 1 || !sink.playing) {
				t.Fatalf("loop should rewind and play, got %+v", sink)
			}
		})
	}
}

func TestRemovedSinkIsClosed(t *testing.T) {
	h := newHarness(t, fire)
	e := ecs.CreateEntity(h.world)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg").WithEntity(e))
	h.frames(1)
	sink := h.sinkOf(e)

	ecs.Remove(h.world, e, component.AudioSinkComponent.Kind())
	h.frames(1)
	if !sink.closed {
		t.Fatalf("sink should be closed once its component is gone")
	}
	if ecs.Has(h.world, e, component.TrackComponent.Kind()) || ecs.Has(h.world, e, component.ChannelComponent.Kind()) {
		t.Fatalf("track and channel should be cleared after the sink is removed")
	}
	if h.ctrl.ActiveSinks() != 0 {
		t.Fatalf("expected no live sinks")
	}

	other := ecs.CreateEntity(h.world)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg").WithForce().WithEntity(other))
	h.frames(1)
	otherSink := h.sinkOf(other)
	ecs.DestroyEntity(h.world, other)
	h.frames(1)
	if !otherSink.closed {
		t.Fatalf("destroying the entity should close its sink")
	}
}

func TestFailedLoadIsAbandoned(t *testing.T) {
	h := newHarness(t, lost)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/missing.ogg"))
	h.frames(2)
	if len(h.sinks.sinks) != 0 {
		t.Fatalf("failed asset should not produce a sink")
	}
	if ecs.Count(h.world, component.AudioSourceComponent.Kind()) != 0 ||
		ecs.Count(h.world, component.TrackComponent.Kind()) != 0 ||
		ecs.Count(h.world, component.ChannelComponent.Kind()) != 0 {
		t.Fatalf("failed play should be stripped")
	}
}

func TestVolume(t *testing.T) {
	h := newHarness(t, fire, theme)
	h.ctrl.MustRegisterChannel("sfx")
	h.ctrl.MustRegisterChannel("music")
	h.configure("sfx", audio.NewSettingsEvent().WithVolume(0.5))
	h.configure(audio.GlobalChannel, audio.NewSettingsEvent().WithVolume(0.5))

	fx := ecs.CreateEntity(h.world)
	bg := ecs.CreateEntity(h.world)
	h.play("sfx", audio.NewPlayEvent("sfx/fire.ogg").WithEntity(fx).WithSettings(audio.SettingsOnce.WithVolume(0.5)))
	h.play("music", audio.NewPlayEvent("music/theme.ogg").WithEntity(bg))
	h.frames(1)

	if got := h.sinkOf(fx).volume; !approx(got, 0.125) {
		t.Fatalf("sfx sink: expected 0.5*0.5*0.5, got %v", got)
	}
	if got := h.sinkOf(bg).volume; !approx(got, 0.5) {
		t.Fatalf("music sink: expected 1*0.5, got %v", got)
	}

	h.configure(audio.GlobalChannel, audio.NewSettingsEvent().WithVolume(0.8))
	h.frames(1)
	if got := h.sinkOf(fx).volume; !approx(got, 0.4) {
		t.Fatalf("sfx sink after global change: expected 1*0.5*0.8, got %v", got)
	}
	if got := h.sinkOf(bg).volume; !approx(got, 0.8) {
		t.Fatalf("music sink after global change: expected 0.8, got %v", got)
	}

	h.configure("music", audio.NewSettingsEvent().WithVolume(0.25).WithTrack("music/theme.ogg").WithSettings(audio.SettingsLoop.WithVolume(0.5)))
	h.frames(1)
	if got := h.sinkOf(bg).volume; !approx(got, 0.5*0.25*0.8) {
		t.Fatalf("music sink after channel change: got %v", got)
	}
	if got := h.sinkOf(fx).volume; !approx(got, 0.4) {
		t.Fatalf("other channels must not change, got %v", got)
	}

	h.configure(audio.GlobalChannel, audio.NewSettingsEvent().WithVolume(3))
	h.frames(1)
	if got := h.sinkOf(bg).volume; !approx(got, 0.5*0.25) {
		t.Fatalf("global volume should clamp to 1, got %v", got)
	}
}

func TestTrackVolumeClamped(t *testing.T) {
	h := newHarness(t, fire)
	h.ctrl.MustRegisterChannel("sfx")

	e := ecs.CreateEntity(h.world)
	h.play("sfx", audio.NewPlayEvent("sfx/fire.ogg").WithEntity(e).WithSettings(audio.SettingsOnce.WithVolume(2.5)))
	h.frames(1)
	if got := h.sinkOf(e).volume; !approx(got, 1) {
		t.Fatalf("play volume above 1 should clamp, got %v", got)
	}

	steps := []struct {
		name    string
		channel float64
		track   float64
		want    float64
	}{
		{"negative_override", 1, -3, 0},
		{"override_above_one", 0.5, 4, 0.5},
		{"in_range", 0.5, 0.5, 0.25},
	}
	for _, st := range steps {
		h.configure("sfx", audio.NewSettingsEvent().
			WithVolume(st.channel).
			WithTrack("sfx/fire.ogg").
			WithSettings(audio.SettingsOnce.WithVolume(st.track)))
		h.frames(1)
		if got := h.sinkOf(e).volume; !approx(got, st.want) {
			t.Fatalf("%s: expected %v, got %v", st.name, st.want, got)
		}
	}
}

func TestTrackAliasesShareState(t *testing.T) {
	h := newHarness(t, fire)

	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg"))
	h.frames(1)
	h.play(audio.GlobalChannel, audio.NewPlayEvent("SfxFireOGG"))
	h.frames(1)
	if len(h.sinks.sinks) != 1 {
		t.Fatalf("path and ID name one track and share its timer, got %d sinks", len(h.sinks.sinks))
	}
	cache, _ := h.ctrl.Cache(audio.GlobalChannel)
	if cache.Len() != 1 || cache.CanPlay("sfx/fire.ogg") {
		t.Fatalf("expected one running timer keyed by path, got %d", cache.Len())
	}

	h.configure(audio.GlobalChannel, audio.NewSettingsEvent().WithTrack("SfxFireOGG").WithDelayMode(audio.Immediate()))
	h.frames(1)
	settings, _ := h.ctrl.Settings(audio.GlobalChannel)
	if !settings.TrackDelayMode("sfx/fire.ogg").IsImmediate() {
		t.Fatalf("override given by ID should apply to the path")
	}
	if settings.HasTrackSettings("SfxFireOGG") || len(settings.Tracks()) != 1 {
		t.Fatalf("override must not be stored under the ID, got %v", settings.Tracks())
	}

	h.play(audio.GlobalChannel, audio.NewPlayEvent("SfxFireOGG"))
	h.frames(1)
	if len(h.sinks.sinks) != 2 {
		t.Fatalf("immediate override should let the replay through, got %d sinks", len(h.sinks.sinks))
	}
	ecs.ForEach(h.world, component.TrackComponent.Kind(), func(e ecs.Entity, tr *component.Track) {
		if tr.ID != "sfx/fire.ogg" {
			t.Fatalf("track component should hold the path, got %q", tr.ID)
		}
	})
}

func TestGlobalSinkVolumeNotSquared(t *testing.T) {
	h := newHarness(t, fire)
	h.configure(audio.GlobalChannel, audio.NewSettingsEvent().WithVolume(0.5))
	h.play(audio.GlobalChannel, audio.NewPlayEvent("sfx/fire.ogg"))
	h.frames(1)
	e, _ := ecs.First(h.world, component.AudioSinkComponent.Kind())
	if got := h.sinkOf(e).volume; !approx(got, 0.5) {
		t.Fatalf("global channel volume applies once, got %v", got)
	}
}

func TestApplyPresets(t *testing.T) {
	h := newHarness(t, fire)
	volume := 0.5
	half := 0.25
	loop := audio.PlaybackLoop
	immediate := audio.Immediate()
	specs := []prefabs.ChannelSpec{
		{Name: "global", Volume: &volume},
		{
			Name:     "music",
			Playback: &prefabs.PlaybackSpec{Mode: &loop},
			Tracks: map[string]prefabs.TrackSpec{
				"music/theme.ogg": {DelayMode: &immediate, Playback: &prefabs.PlaybackSpec{Volume: &half}},
			},
		},
	}
	if err := h.ctrl.ApplyPresets(specs); err != nil {
		t.Fatal(err)
	}
	h.frames(1)

	global, _ := h.ctrl.Settings(audio.GlobalChannel)
	if global.Volume() != 0.5 {
		t.Fatalf("unexpected global volume %v", global.Volume())
	}
	music, ok := h.ctrl.Settings("music")
	if !ok {
		t.Fatalf("music preset should register the channel")
	}
	if music.DefaultSettings().Mode != audio.PlaybackLoop {
		t.Fatalf("music default should loop")
	}
	theme := music.TrackSettings("music/theme.ogg")
	if theme.Mode != audio.PlaybackLoop || theme.Volume != 0.25 {
		t.Fatalf("unexpected theme settings %+v", theme)
	}
	if music.TrackDelayMode("music/theme.ogg") != audio.Immediate() {
		t.Fatalf("theme should play immediately")
	}

	if err := h.ctrl.ApplyPresets(specs); err != nil {
		t.Fatalf("re-applying presets should reconfigure, got %v", err)
	}
}
