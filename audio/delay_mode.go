package audio

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DelayKind enumerates the DelayMode variants.
type DelayKind uint8

const (
	DelayWait DelayKind = iota
	DelayImmediate
	DelayPercent
	DelayMilliseconds
)

// DelayMode decides how long a repeat play of the same track is suppressed
// after it starts. The zero value is Wait.
type DelayMode struct {
	kind   DelayKind
	amount int
}

// Wait suppresses repeats for the full length of the track.
func Wait() DelayMode { return DelayMode{kind: DelayWait} }

// Immediate never suppresses repeats.
func Immediate() DelayMode { return DelayMode{kind: DelayImmediate} }

// Percent suppresses repeats for p percent of the track length.
func Percent(p int) DelayMode { return DelayMode{kind: DelayPercent, amount: p} }

// Milliseconds suppresses repeats for the track length plus ms, which may be
// negative to allow overlap.
func Milliseconds(ms int) DelayMode { return DelayMode{kind: DelayMilliseconds, amount: ms} }

func (m DelayMode) Kind() DelayKind { return m.kind }

func (m DelayMode) Amount() int { return m.amount }

func (m DelayMode) IsImmediate() bool { return m.kind == DelayImmediate }

// Delay returns the suppression window for a track of the given length.
// The result is never negative.
func (m DelayMode) Delay(track time.Duration) time.Duration {
	var d time.Duration
	switch m.kind {
	case DelayWait:
		d = track
	case DelayImmediate:
		d = 0
	case DelayPercent:
		d = time.Duration(float64(track) * float64(m.amount) / 100)
	case DelayMilliseconds:
		offset := time.Duration(m.amount) * time.Millisecond
		if offset < -track {
			slog.Warn("delay is shorter than the negative track length, use immediate instead",
				"delay", offset, "track_length", track)
		}
		d = track + offset
	}
	if d < 0 {
		return 0
	}
	return d
}

func (m DelayMode) String() string {
	switch m.kind {
	case DelayImmediate:
		return "immediate"
	case DelayPercent:
		return "percent:" + strconv.Itoa(m.amount)
	case DelayMilliseconds:
		return "ms:" + strconv.Itoa(m.amount)
	default:
		return "wait"
	}
}

// ParseDelayMode parses the text form produced by String.
func ParseDelayMode(s string) (DelayMode, error) {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	switch name {
	case "", "wait":
		if hasArg {
			break
		}
		return Wait(), nil
	case "immediate":
		if hasArg {
			break
		}
		return Immediate(), nil
	case "percent", "ms", "milliseconds":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return DelayMode{}, fmt.Errorf("delay mode %q: %w", s, err)
		}
		if name == "percent" {
			return Percent(n), nil
		}
		return Milliseconds(n), nil
	}
	return DelayMode{}, fmt.Errorf("delay mode %q: %w", s, ErrInvalidDelayMode)
}

func (m DelayMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *DelayMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDelayMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
