// Package controller installs the audio channel plugin into an ECS world.
//
// A Controller owns the channel registry and registers the audio systems on
// a scheduler. Games talk to it to register channels, queue play and
// settings events, and apply channel presets.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
	"github.com/milk9111/audiocontroller/ecs"
	"github.com/milk9111/audiocontroller/ecs/component"
	"github.com/milk9111/audiocontroller/ecs/system"
	"github.com/milk9111/audiocontroller/prefabs"
)

var (
	ErrNoLoader         = errors.New("controller: asset loader is required")
	ErrAlreadyInstalled = errors.New("controller: audio plugin already installed")
)

// Options configures Install.
type Options struct {
	Loader *assets.Loader
	// Sinks creates audio output. Without it sources are never started,
	// which suits headless worlds.
	Sinks audio.SinkFactory
	// Step is the fixed frame duration; system.DefaultStep when zero.
	Step time.Duration
}

type Controller struct {
	world    *ecs.World
	registry *audio.Registry
	playback *system.PlaybackSystem
}

// Install creates the channel registry entity, registers the global channel
// and appends the audio systems to s in their run order.
func Install(w *ecs.World, s *ecs.Scheduler, opts Options) (*Controller, error) {
	if opts.Loader == nil {
		return nil, ErrNoLoader
	}
	if _, ok := ecs.First(w, component.AudioChannelsComponent.Kind()); ok {
		return nil, ErrAlreadyInstalled
	}

	registry := audio.NewRegistry()
	if _, err := registry.Register(audio.GlobalChannel); err != nil {
		return nil, err
	}
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.AudioChannelsComponent.Kind(), &component.AudioChannels{Registry: registry}); err != nil {
		return nil, fmt.Errorf("controller: install registry: %w", err)
	}

	playback := system.NewPlaybackSystem(opts.Loader, opts.Sinks)
	s.Add(system.NewTimeSystem(opts.Step))
	s.Add(system.NewAudioCacheSystem())
	s.Add(system.NewRogueAudioSystem())
	s.Add(system.NewChannelPlaySystem())
	s.Add(system.NewSettingsEventSystem(opts.Loader))
	s.Add(system.NewRemoveAudioSystem())
	s.Add(system.NewPlayEventSystem(opts.Loader))
	s.Add(playback)
	s.Add(system.NewVolumeSystem())

	return &Controller{world: w, registry: registry, playback: playback}, nil
}

// RegisterChannel adds a channel. Registering an id twice is an error.
func (c *Controller) RegisterChannel(id audio.ChannelID) error {
	_, err := c.registry.Register(id)
	return err
}

// MustRegisterChannel is RegisterChannel that panics on error.
func (c *Controller) MustRegisterChannel(id audio.ChannelID) {
	if err := c.RegisterChannel(id); err != nil {
		panic(err)
	}
}

func (c *Controller) Play(id audio.ChannelID, evt audio.PlayEvent) error {
	return c.registry.Play(id, evt)
}

func (c *Controller) Configure(id audio.ChannelID, evt audio.SettingsEvent) error {
	return c.registry.Configure(id, evt)
}

// Settings returns a channel's live settings. Mutate them through Configure.
func (c *Controller) Settings(id audio.ChannelID) (*audio.ChannelSettings, bool) {
	ch, ok := c.registry.Channel(id)
	if !ok {
		return nil, false
	}
	return ch.Settings, true
}

// Cache returns a channel's debounce timers.
func (c *Controller) Cache(id audio.ChannelID) (*audio.AudioCache, bool) {
	ch, ok := c.registry.Channel(id)
	if !ok {
		return nil, false
	}
	return ch.Cache, true
}

// Channels lists the registered channel ids in registration order.
func (c *Controller) Channels() []audio.ChannelID {
	return lo.Map(c.registry.Channels(), func(ch *audio.Channel, _ int) audio.ChannelID {
		return ch.ID
	})
}

// ActiveSinks reports how many sinks the playback system owns.
func (c *Controller) ActiveSinks() int { return c.playback.Live() }

// ApplyPresets registers every preset channel that is not known yet and
// queues its settings events. Presets for known channels only reconfigure
// them, so presets can be re-applied on reload.
func (c *Controller) ApplyPresets(specs []prefabs.ChannelSpec) error {
	for _, spec := range specs {
		id := spec.ID()
		ch, ok := c.registry.Channel(id)
		if !ok {
			var err error
			if ch, err = c.registry.Register(id); err != nil {
				return err
			}
		}
		for _, evt := range spec.SettingsEvents(ch.Settings.DefaultSettings()) {
			ch.Updates.Push(evt)
		}
	}
	return nil
}
