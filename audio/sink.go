package audio

import "github.com/milk9111/audiocontroller/assets"

// Sink is a live playback of one clip.
type Sink interface {
	Play()
	Pause()
	IsPaused() bool
	// Done reports whether the clip played to its end.
	Done() bool
	Volume() float64
	SetVolume(volume float64)
	Rewind() error
	Close() error
}

// SinkFactory starts playbacks for loaded clips.
type SinkFactory interface {
	NewSink(clip *assets.Clip, settings PlaybackSettings) (Sink, error)
}
