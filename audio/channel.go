// Package audio holds the channel model of the audio controller: per-channel
// settings, debounce timers, play and settings events, and the registry that
// ties them to a channel identifier.
package audio

// ChannelID names a logical audio bus such as "music" or "sfx".
type ChannelID string

// GlobalChannel is always registered. Its volume scales every other channel
// and it receives audio entities that were spawned without a channel.
const GlobalChannel ChannelID = "global"

// TrackID identifies an audio asset by its manifest name.
type TrackID string

func (id ChannelID) String() string { return string(id) }

func (id TrackID) String() string { return string(id) }
