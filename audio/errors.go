package audio

import "errors"

var (
	ErrEmptyChannelID      = errors.New("audio: empty channel id")
	ErrChannelRegistered   = errors.New("audio: channel already registered")
	ErrUnknownChannel      = errors.New("audio: unknown channel")
	ErrInvalidDelayMode    = errors.New("audio: invalid delay mode")
	ErrInvalidPlaybackMode = errors.New("audio: invalid playback mode")
)
