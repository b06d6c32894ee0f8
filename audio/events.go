package audio

// EntityRef is an ECS entity as seen by the audio package. ecs.Entity
// satisfies it without either package importing the other.
type EntityRef interface {
	EntityBits() uint64
}

// PlayEvent requests playback of a track on a channel.
type PlayEvent struct {
	track     TrackID
	entity    uint64
	hasEntity bool
	child     bool
	force     bool
	settings  *PlaybackSettings
	delayMode *DelayMode
}

func NewPlayEvent(track TrackID) PlayEvent {
	return PlayEvent{track: track}
}

// WithEntity plays the track on entity instead of a new entity. A nil
// entity clears the target.
func (e PlayEvent) WithEntity(entity EntityRef) PlayEvent {
	e.entity, e.hasEntity = 0, entity != nil
	if entity != nil {
		e.entity = entity.EntityBits()
	}
	return e
}

// WithParent spawns the playback as a new child of parent.
func (e PlayEvent) WithParent(parent EntityRef) PlayEvent {
	e = e.WithEntity(parent)
	e.child = true
	return e
}

// AsChild spawns the playback as a child of the target entity.
func (e PlayEvent) AsChild() PlayEvent {
	e.child = true
	return e
}

// WithForce plays the track even if its debounce timer is running.
func (e PlayEvent) WithForce() PlayEvent {
	e.force = true
	return e
}

func (e PlayEvent) WithSettings(settings PlaybackSettings) PlayEvent {
	e.settings = &settings
	return e
}

func (e PlayEvent) WithDelayMode(mode DelayMode) PlayEvent {
	e.delayMode = &mode
	return e
}

func (e PlayEvent) Track() TrackID { return e.track }

// Entity returns the packed target entity, if one was set. A target of
// zero is still a target; it never names a live entity.
func (e PlayEvent) Entity() (uint64, bool) { return e.entity, e.hasEntity }

func (e PlayEvent) Child() bool { return e.child }

func (e PlayEvent) Forced() bool { return e.force }

func (e PlayEvent) Settings() (PlaybackSettings, bool) {
	if e.settings == nil {
		return PlaybackSettings{}, false
	}
	return *e.settings, true
}

func (e PlayEvent) DelayMode() (DelayMode, bool) {
	if e.delayMode == nil {
		return DelayMode{}, false
	}
	return *e.delayMode, true
}

const conflictingScope = "audio: settings event cannot target a single track and all tracks, call either All or WithTrack"

// SettingsEvent changes the settings of a channel. Without WithTrack or All
// the settings and delay mode apply to the channel defaults.
type SettingsEvent struct {
	volume    *float64
	track     *TrackID
	all       bool
	settings  *PlaybackSettings
	delayMode *DelayMode
}

func NewSettingsEvent() SettingsEvent {
	return SettingsEvent{}
}

func (e SettingsEvent) WithVolume(volume float64) SettingsEvent {
	e.volume = &volume
	return e
}

// WithTrack scopes the event to one track. It panics if All was called.
func (e SettingsEvent) WithTrack(id TrackID) SettingsEvent {
	if e.all {
		panic(conflictingScope)
	}
	e.track = &id
	return e
}

// All scopes the event to every track with an override. It panics if
// WithTrack was called.
func (e SettingsEvent) All() SettingsEvent {
	if e.track != nil {
		panic(conflictingScope)
	}
	e.all = true
	return e
}

// Track returns the track the event is scoped to, if any.
func (e SettingsEvent) Track() (TrackID, bool) {
	if e.track == nil {
		return "", false
	}
	return *e.track, true
}

func (e SettingsEvent) WithSettings(settings PlaybackSettings) SettingsEvent {
	e.settings = &settings
	return e
}

func (e SettingsEvent) WithDelayMode(mode DelayMode) SettingsEvent {
	e.delayMode = &mode
	return e
}

// Apply writes the event into s.
func (e SettingsEvent) Apply(s *ChannelSettings) {
	if s == nil {
		return
	}
	if e.volume != nil {
		s.SetVolume(*e.volume)
	}
	switch {
	case e.track != nil:
		if e.delayMode != nil {
			s.SetTrackDelayMode(*e.track, *e.delayMode)
		}
		if e.settings != nil {
			s.SetTrackSettings(*e.track, *e.settings)
		}
	case e.all:
		if e.delayMode != nil {
			s.SetAllTrackDelayModes(*e.delayMode)
		}
		if e.settings != nil {
			s.SetAllTrackSettings(*e.settings)
		}
	default:
		if e.delayMode != nil {
			s.SetDefaultDelayMode(*e.delayMode)
		}
		if e.settings != nil {
			s.SetDefaultSettings(*e.settings)
		}
	}
}
