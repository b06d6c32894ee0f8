// Package output plays clips through ebiten's audio context.
package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/milk9111/audiocontroller/assets"
	ac "github.com/milk9111/audiocontroller/audio"
)

var ErrUnsupportedFormat = errors.New("output: unsupported audio format")

const resampleQuality = 4

// Factory creates ebiten players for loaded clips. Playback speed is not
// applied to the output; it only shortens the debounce window.
type Factory struct {
	ctx *audio.Context
}

// NewFactory uses the process audio context, creating it at sampleRate if
// none exists yet.
func NewFactory(sampleRate int) *Factory {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Factory{ctx: ctx}
}

func (f *Factory) NewSink(clip *assets.Clip, _ ac.PlaybackSettings) (ac.Sink, error) {
	if clip == nil {
		return nil, fmt.Errorf("output: nil clip")
	}
	player, err := f.newPlayer(clip)
	if err != nil {
		return nil, fmt.Errorf("output: %s: %w", clip.Entry.Path, err)
	}
	return &sink{player: player}, nil
}

func (f *Factory) newPlayer(clip *assets.Clip) (*audio.Player, error) {
	reader := bytes.NewReader(clip.Data)
	sampleRate := f.ctx.SampleRate()

	switch strings.ToLower(path.Ext(clip.Entry.Path)) {
	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav: %w", err)
		}
		return f.ctx.NewPlayer(stream)
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode mp3: %w", err)
		}
		return f.ctx.NewPlayer(stream)
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg: %w", err)
		}
		return f.ctx.NewPlayer(stream)
	case ".flac":
		pcm, err := decodeFLAC(reader, sampleRate)
		if err != nil {
			return nil, err
		}
		return f.ctx.NewPlayerF32(bytes.NewReader(pcm))
	}
	return nil, ErrUnsupportedFormat
}

// decodeFLAC renders a FLAC stream to interleaved float32 stereo at the
// context sample rate. ebiten has no FLAC decoder.
func decodeFLAC(r io.Reader, sampleRate int) ([]byte, error) {
	streamer, format, err := flac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if int(format.SampleRate) != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(sampleRate), streamer)
	}

	var out bytes.Buffer
	buf := make([][2]float64, 4096)
	frame := make([]byte, 8)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(frame[0:], math.Float32bits(float32(buf[i][0])))
			binary.LittleEndian.PutUint32(frame[4:], math.Float32bits(float32(buf[i][1])))
			out.Write(frame)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}
	return out.Bytes(), nil
}

type sink struct {
	player  *audio.Player
	started bool
	paused  bool
}

func (s *sink) Play() {
	s.player.Play()
	s.started = true
	s.paused = false
}

func (s *sink) Pause() {
	s.player.Pause()
	s.paused = true
}

func (s *sink) IsPaused() bool { return s.paused }

func (s *sink) Done() bool {
	return s.started && !s.paused && !s.player.IsPlaying()
}

func (s *sink) Volume() float64 { return s.player.Volume() }

func (s *sink) SetVolume(volume float64) { s.player.SetVolume(volume) }

func (s *sink) Rewind() error { return s.player.Rewind() }

func (s *sink) Close() error { return s.player.Close() }
