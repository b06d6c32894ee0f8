package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var (
	ErrUnsupportedFormat = errors.New("assets: unsupported audio format")
	ErrNoFrames          = errors.New("assets: audio has no frames")
)

// DefaultFormats are the extensions scanned when none are configured.
var DefaultFormats = []string{"wav", "mp3", "ogg", "flac"}

// ProbeDuration decodes the header of an audio file and returns its length.
func ProbeDuration(filename string) (time.Duration, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	// the decoders take ownership of f and close it with the streamer
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return 0, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("decode %s: %w", filename, err)
	}
	defer streamer.Close()

	frames := streamer.Len()
	if frames <= 0 || format.SampleRate <= 0 {
		return 0, fmt.Errorf("%s: %w", filename, ErrNoFrames)
	}
	return format.SampleRate.D(frames), nil
}
