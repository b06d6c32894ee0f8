package audio

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlaybackMode decides what happens to an entity when its sound finishes.
type PlaybackMode uint8

const (
	// PlaybackOnce plays once and leaves the entity untouched.
	PlaybackOnce PlaybackMode = iota
	// PlaybackLoop rewinds and plays again.
	PlaybackLoop
	// PlaybackDespawn despawns the entity and its children.
	PlaybackDespawn
	// PlaybackRemove strips the playback components from the entity.
	PlaybackRemove
)

func (m PlaybackMode) String() string {
	switch m {
	case PlaybackLoop:
		return "loop"
	case PlaybackDespawn:
		return "despawn"
	case PlaybackRemove:
		return "remove"
	default:
		return "once"
	}
}

func ParsePlaybackMode(s string) (PlaybackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return PlaybackOnce, nil
	case "loop":
		return PlaybackLoop, nil
	case "despawn":
		return PlaybackDespawn, nil
	case "remove":
		return PlaybackRemove, nil
	}
	return PlaybackOnce, fmt.Errorf("playback mode %q: %w", s, ErrInvalidPlaybackMode)
}

func (m PlaybackMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *PlaybackMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePlaybackMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PlaybackSettings configures a single playback.
type PlaybackSettings struct {
	Mode   PlaybackMode `yaml:"mode"`
	Volume float64      `yaml:"volume"`
	Speed  float64      `yaml:"speed"`
	Paused bool         `yaml:"paused"`
}

var (
	SettingsOnce    = PlaybackSettings{Mode: PlaybackOnce, Volume: 1, Speed: 1}
	SettingsLoop    = PlaybackSettings{Mode: PlaybackLoop, Volume: 1, Speed: 1}
	SettingsDespawn = PlaybackSettings{Mode: PlaybackDespawn, Volume: 1, Speed: 1}
	SettingsRemove  = PlaybackSettings{Mode: PlaybackRemove, Volume: 1, Speed: 1}
)

func (s PlaybackSettings) WithVolume(volume float64) PlaybackSettings {
	s.Volume = volume
	return s
}

func (s PlaybackSettings) WithSpeed(speed float64) PlaybackSettings {
	s.Speed = speed
	return s
}

func (s PlaybackSettings) WithPaused() PlaybackSettings {
	s.Paused = true
	return s
}

// EffectiveSpeed returns Speed, treating non-positive values as 1.
func (s PlaybackSettings) EffectiveSpeed() float64 {
	if s.Speed <= 0 {
		return 1
	}
	return s.Speed
}
