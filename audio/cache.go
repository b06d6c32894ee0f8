package audio

import (
	"slices"
	"time"
)

// Timer is a one-shot countdown.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
}

func NewTimer(d time.Duration) *Timer {
	return &Timer{duration: d}
}

func (t *Timer) Tick(dt time.Duration) {
	if dt <= 0 || t.Finished() {
		return
	}
	t.elapsed += dt
}

func (t *Timer) Finished() bool { return t.elapsed >= t.duration }

func (t *Timer) Remaining() time.Duration {
	if t.Finished() {
		return 0
	}
	return t.duration - t.elapsed
}

func (t *Timer) Duration() time.Duration { return t.duration }

// AudioCache holds the debounce timer of every track played on a channel.
// Timers are created lazily on the first allowed play.
type AudioCache struct {
	timers map[TrackID]*Timer
}

func NewAudioCache() *AudioCache {
	return &AudioCache{timers: make(map[TrackID]*Timer)}
}

// Tick advances every timer.
func (c *AudioCache) Tick(dt time.Duration) {
	for _, timer := range c.timers {
		timer.Tick(dt)
	}
}

// CanPlay reports whether id has no outstanding timer.
func (c *AudioCache) CanPlay(id TrackID) bool {
	timer, ok := c.timers[id]
	return !ok || timer.Finished()
}

// SetEntry (re)starts the timer for id.
func (c *AudioCache) SetEntry(id TrackID, d time.Duration) {
	c.timers[id] = NewTimer(d)
}

// Remaining returns the time left on id's timer.
func (c *AudioCache) Remaining(id TrackID) time.Duration {
	timer, ok := c.timers[id]
	if !ok {
		return 0
	}
	return timer.Remaining()
}

// Len returns the number of tracked timers.
func (c *AudioCache) Len() int { return len(c.timers) }

// Admission is the outcome of a play request.
type Admission struct {
	Allowed bool
	// Restarted is true when the track's timer was (re)started.
	Restarted bool
	Delay     time.Duration
}

// Admit decides whether a play of id may start now and restarts the
// debounce timer when it does. Forced requests always play and restart the
// timer. Immediate requests always play but only restart an elapsed timer.
func (c *AudioCache) Admit(id TrackID, length time.Duration, mode DelayMode, settings PlaybackSettings, force bool) Admission {
	delay := mode.Delay(time.Duration(float64(length) / settings.EffectiveSpeed()))
	canPlay := c.CanPlay(id)
	switch {
	case force:
		c.SetEntry(id, delay)
		return Admission{Allowed: true, Restarted: true, Delay: delay}
	case mode.IsImmediate():
		if canPlay {
			c.SetEntry(id, delay)
		}
		return Admission{Allowed: true, Restarted: canPlay, Delay: delay}
	case canPlay:
		c.SetEntry(id, delay)
		return Admission{Allowed: true, Restarted: true, Delay: delay}
	}
	return Admission{Delay: delay}
}

func sortTracks(ids []TrackID) {
	slices.Sort(ids)
}
