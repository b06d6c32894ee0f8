package audio

import "github.com/samber/lo"

// ChannelSettings holds the volume and playback policy of one channel.
// Every mutation bumps Revision so systems can detect changes.
type ChannelSettings struct {
	volume           float64
	trackSettings    map[TrackID]PlaybackSettings
	trackDelayModes  map[TrackID]DelayMode
	defaultSettings  PlaybackSettings
	defaultDelayMode DelayMode
	revision         uint64
}

func NewChannelSettings() *ChannelSettings {
	return &ChannelSettings{
		volume:           1,
		trackSettings:    make(map[TrackID]PlaybackSettings),
		trackDelayModes:  make(map[TrackID]DelayMode),
		defaultSettings:  SettingsOnce,
		defaultDelayMode: Wait(),
	}
}

func (s *ChannelSettings) Revision() uint64 { return s.revision }

func (s *ChannelSettings) Volume() float64 { return s.volume }

// SetVolume sets the channel volume, clamped to [0, 1].
func (s *ChannelSettings) SetVolume(volume float64) {
	s.volume = lo.Clamp(volume, 0, 1)
	s.revision++
}

// TrackSettings returns the override for id or the channel default.
func (s *ChannelSettings) TrackSettings(id TrackID) PlaybackSettings {
	if settings, ok := s.trackSettings[id]; ok {
		return settings
	}
	return s.defaultSettings
}

// HasTrackSettings reports whether id has its own override.
func (s *ChannelSettings) HasTrackSettings(id TrackID) bool {
	_, ok := s.trackSettings[id]
	return ok
}

func (s *ChannelSettings) SetTrackSettings(id TrackID, settings PlaybackSettings) {
	s.trackSettings[id] = settings
	s.revision++
}

// SetAllTrackSettings overwrites every existing per-track override.
func (s *ChannelSettings) SetAllTrackSettings(settings PlaybackSettings) {
	for id := range s.trackSettings {
		s.trackSettings[id] = settings
	}
	s.revision++
}

func (s *ChannelSettings) DefaultSettings() PlaybackSettings { return s.defaultSettings }

func (s *ChannelSettings) SetDefaultSettings(settings PlaybackSettings) {
	s.defaultSettings = settings
	s.revision++
}

// TrackDelayMode returns the delay mode for id or the channel default.
func (s *ChannelSettings) TrackDelayMode(id TrackID) DelayMode {
	if mode, ok := s.trackDelayModes[id]; ok {
		return mode
	}
	return s.defaultDelayMode
}

func (s *ChannelSettings) SetTrackDelayMode(id TrackID, mode DelayMode) {
	s.trackDelayModes[id] = mode
	s.revision++
}

// SetAllTrackDelayModes overwrites every existing per-track delay mode.
func (s *ChannelSettings) SetAllTrackDelayModes(mode DelayMode) {
	for id := range s.trackDelayModes {
		s.trackDelayModes[id] = mode
	}
	s.revision++
}

func (s *ChannelSettings) DefaultDelayMode() DelayMode { return s.defaultDelayMode }

func (s *ChannelSettings) SetDefaultDelayMode(mode DelayMode) {
	s.defaultDelayMode = mode
	s.revision++
}

// Tracks returns the ids that carry a settings or delay override, sorted.
func (s *ChannelSettings) Tracks() []TrackID {
	ids := lo.Uniq(append(lo.Keys(s.trackSettings), lo.Keys(s.trackDelayModes)...))
	sortTracks(ids)
	return ids
}
