package prefabs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/audiocontroller/audio"
)

const ChannelsFile = "channels.yaml"

var ErrUnnamedChannel = errors.New("prefabs: channel preset without a name")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ChannelsSpec struct {
	Channels []ChannelSpec `yaml:"channels"`
}

// ChannelSpec is the preset of one audio channel. Unset fields keep the
// channel's current value.
type ChannelSpec struct {
	Name      string               `yaml:"name"`
	Volume    *float64             `yaml:"volume"`
	DelayMode *audio.DelayMode     `yaml:"delay_mode"`
	Playback  *PlaybackSpec        `yaml:"playback"`
	Tracks    map[string]TrackSpec `yaml:"tracks"`
}

type TrackSpec struct {
	DelayMode *audio.DelayMode `yaml:"delay_mode"`
	Playback  *PlaybackSpec    `yaml:"playback"`
}

// PlaybackSpec overrides parts of a PlaybackSettings.
type PlaybackSpec struct {
	Mode   *audio.PlaybackMode `yaml:"mode"`
	Volume *float64            `yaml:"volume"`
	Speed  *float64            `yaml:"speed"`
	Paused *bool               `yaml:"paused"`
}

// Apply returns base with the spec's fields layered on top.
func (p *PlaybackSpec) Apply(base audio.PlaybackSettings) audio.PlaybackSettings {
	if p == nil {
		return base
	}
	if p.Mode != nil {
		base.Mode = *p.Mode
	}
	if p.Volume != nil {
		base.Volume = *p.Volume
	}
	if p.Speed != nil {
		base.Speed = *p.Speed
	}
	if p.Paused != nil {
		base.Paused = *p.Paused
	}
	return base
}

func LoadChannelSpecs() ([]ChannelSpec, error) {
	spec, err := LoadSpec[ChannelsSpec](ChannelsFile)
	if err != nil {
		return nil, err
	}
	for i, ch := range spec.Channels {
		if ch.Name == "" {
			return nil, fmt.Errorf("prefabs: %s channel %d: %w", ChannelsFile, i, ErrUnnamedChannel)
		}
	}
	return spec.Channels, nil
}

// ID returns the channel id the preset configures.
func (s ChannelSpec) ID() audio.ChannelID { return audio.ChannelID(s.Name) }

// SettingsEvents turns the preset into settings events: one for the
// channel defaults followed by one per track override, in track order.
// Track playback overrides are layered on the channel's default settings.
func (s ChannelSpec) SettingsEvents(current audio.PlaybackSettings) []audio.SettingsEvent {
	events := make([]audio.SettingsEvent, 0, 1+len(s.Tracks))

	defaults := audio.NewSettingsEvent()
	if s.Volume != nil {
		defaults = defaults.WithVolume(*s.Volume)
	}
	if s.DelayMode != nil {
		defaults = defaults.WithDelayMode(*s.DelayMode)
	}
	base := current
	if s.Playback != nil {
		base = s.Playback.Apply(current)
		defaults = defaults.WithSettings(base)
	}
	events = append(events, defaults)

	names := lo.Keys(s.Tracks)
	slices.Sort(names)
	for _, name := range names {
		track := s.Tracks[name]
		evt := audio.NewSettingsEvent().WithTrack(audio.TrackID(name))
		if track.DelayMode != nil {
			evt = evt.WithDelayMode(*track.DelayMode)
		}
		if track.Playback != nil {
			evt = evt.WithSettings(track.Playback.Apply(base))
		}
		events = append(events, evt)
	}
	return events
}

// AudioSpec describes an entity that plays a track when spawned.
type AudioSpec struct {
	Name      string           `yaml:"name"`
	Track     string           `yaml:"track"`
	Channel   string           `yaml:"channel"`
	DelayMode *audio.DelayMode `yaml:"delay_mode"`
	Playback  *PlaybackSpec    `yaml:"playback"`
}

type AmbienceSpec struct {
	Audio []AudioSpec `yaml:"audio"`
}

func LoadAmbienceSpec() (AmbienceSpec, error) {
	return LoadSpec[AmbienceSpec]("ambience.yaml")
}
