package component

import (
	"github.com/milk9111/audiocontroller/assets"
	"github.com/milk9111/audiocontroller/audio"
)

// Track names the audio asset an entity plays.
type Track struct {
	ID audio.TrackID
}

var TrackComponent = NewComponent[Track]()

// Channel assigns an entity to an audio channel. Adding it to an entity that
// has a Track and no source yet requests playback on that channel.
type Channel struct {
	ID audio.ChannelID
}

var ChannelComponent = NewComponent[Channel]()

var PlaybackSettingsComponent = NewComponent[audio.PlaybackSettings]()

// DelayModeComponent overrides the channel's delay mode for plays triggered
// by adding a Channel.
var DelayModeComponent = NewComponent[audio.DelayMode]()

// AudioSource is a requested clip that has not started playing yet.
type AudioSource struct {
	Handle assets.Handle
}

var AudioSourceComponent = NewComponent[AudioSource]()

// AudioSink is the live output of a playing clip.
type AudioSink struct {
	Sink audio.Sink
}

var AudioSinkComponent = NewComponent[AudioSink]()
