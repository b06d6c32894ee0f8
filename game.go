package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/controller"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/entity"
	"github.com/milk9111/audiocontroller/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	musicChannel audio.ChannelID = "music"
	sfxChannel   audio.ChannelID = "sfx"
)

type Game struct {
	frames int

	lib   *assets.Library
	world *ecs.World
	sched *ecs.Scheduler
	audio *controller.Controller

	ui      *ebitenui.UI
	volumes *volumeUI

	presets  chan []prefabs.ChannelSpec
	selected int
	status   string
}

func NewGame(lib *assets.Library, sinks audio.SinkFactory) (*Game, error) {
	w := ecs.NewWorld()
	s := ecs.NewScheduler()
	ctrl, err := controller.Install(w, s, controller.Options{Loader: lib.Loader(), Sinks: sinks})
	if err != nil {
		return nil, err
	}

	specs, err := prefabs.LoadChannelSpecs()
	if err != nil {
		return nil, err
	}
	if err := ctrl.ApplyPresets(specs); err != nil {
		return nil, err
	}
	for _, id := range []audio.ChannelID{musicChannel, sfxChannel} {
		if _, ok := ctrl.Settings(id); !ok {
			ctrl.MustRegisterChannel(id)
		}
	}
	if _, err := entity.NewAmbience(w); err != nil {
		slog.Warn("spawn ambience", "error", err)
	}

	g := &Game{
		lib:     lib,
		world:   w,
		sched:   s,
		audio:   ctrl,
		presets: make(chan []prefabs.ChannelSpec, 1),
		status:  "ready",
	}
	g.ui, g.volumes = NewVolumeUI(g)
	return g, nil
}

// QueuePresets hands reloaded presets to the game loop. It is safe to call
// from other goroutines; only the latest pending set is kept.
func (g *Game) QueuePresets(specs []prefabs.ChannelSpec) {
	select {
	case <-g.presets:
	default:
	}
	g.presets <- specs
}

func (g *Game) Update() error {
	g.frames++

	select {
	case specs := <-g.presets:
		if err := g.audio.ApplyPresets(specs); err != nil {
			slog.Warn("apply channel presets", "error", err)
		}
	default:
	}

	g.handleInput()
	g.sched.Update(g.world)
	g.volumes.Refresh()
	g.ui.Update()
	return nil
}

func (g *Game) tracks() []string {
	return g.lib.Manifest().Names()
}

func (g *Game) handleInput() {
	tracks := g.tracks()
	if len(tracks) == 0 {
		return
	}
	if g.selected >= len(tracks) {
		g.selected = 0
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.selected = (g.selected + 1) % len(tracks)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.selected = (g.selected + len(tracks) - 1) % len(tracks)
	}

	track := audio.TrackID(tracks[g.selected])
	force := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.play(sfxChannel, track, force)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.play(musicChannel, track, force)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.play(audio.GlobalChannel, track, force)
	}
}

func (g *Game) play(channel audio.ChannelID, track audio.TrackID, force bool) {
	evt := audio.NewPlayEvent(track)
	if force {
		evt = evt.WithForce()
	}
	if err := g.audio.Play(channel, evt); err != nil {
		g.status = err.Error()
		return
	}
	cache, _ := g.audio.Cache(channel)
	g.status = fmt.Sprintf("%s on %s (debounce %s left)", track, channel, cache.Remaining(track))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)

	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f    Sinks: %d\n", g.frames, ebiten.ActualFPS(), g.audio.ActiveSinks())
	b.WriteString("Up/Down select, Space sfx, M music, G global, hold Shift to force\n\n")
	for i, name := range g.tracks() {
		marker := "  "
		if i == g.selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, name)
	}
	fmt.Fprintf(&b, "\n%s", g.status)
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
