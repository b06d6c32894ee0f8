package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidHandle = errors.New("assets: invalid handle")

// Handle is an opaque reference to a requested clip. The zero Handle is
// invalid.
type Handle uint32

func (h Handle) Valid() bool { return h != 0 }

// LoadState reports how far a handle has been resolved.
type LoadState uint8

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "not_loaded"
	}
}

// Clip is the encoded bytes of a loaded asset.
type Clip struct {
	Entry Entry
	Data  []byte
}

type slot struct {
	entry Entry
	state LoadState
	clip  *Clip
	err   error
	done  chan struct{}
}

// Loader resolves track names to clips asynchronously. Callers request a
// handle with Load and poll State until the clip is ready.
type Loader struct {
	fsys fs.FS

	mu       sync.RWMutex
	manifest *Manifest
	handles  map[string]Handle
	slots    []*slot
}

func NewLoader(fsys fs.FS, m *Manifest) *Loader {
	return &Loader{
		fsys:     fsys,
		manifest: m,
		handles:  make(map[string]Handle),
	}
}

// Manifest returns the current manifest.
func (l *Loader) Manifest() *Manifest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.manifest
}

// SetManifest swaps the manifest. Clips that were already requested keep
// their handles.
func (l *Loader) SetManifest(m *Manifest) {
	l.mu.Lock()
	l.manifest = m
	l.mu.Unlock()
}

// Load requests a track by path or ID and returns its handle. The read
// happens in the background; each track is read at most once. Unknown
// tracks log a warning and return false.
func (l *Loader) Load(track string) (Handle, bool) {
	h, s, created, ok := l.reserve(track)
	if !ok {
		slog.Warn("unknown audio track", "track", track)
		return 0, false
	}
	if created {
		go l.fetch(s)
	}
	return h, true
}

func (l *Loader) reserve(track string) (Handle, *slot, bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.manifest.Lookup(track)
	if !ok {
		return 0, nil, false, false
	}
	if h, ok := l.handles[entry.Path]; ok {
		return h, l.slots[h-1], false, true
	}
	s := &slot{entry: entry, state: Loading, done: make(chan struct{})}
	l.slots = append(l.slots, s)
	h := Handle(len(l.slots))
	l.handles[entry.Path] = h
	return h, s, true, true
}

func (l *Loader) fetch(s *slot) {
	data, err := fs.ReadFile(l.fsys, s.entry.Path)

	l.mu.Lock()
	if err != nil {
		s.state = Failed
		s.err = fmt.Errorf("assets: load %s: %w", s.entry.Path, err)
	} else {
		s.state = Loaded
		s.clip = &Clip{Entry: s.entry, Data: data}
	}
	l.mu.Unlock()
	close(s.done)
}

func (l *Loader) slot(h Handle) (*slot, bool) {
	if !h.Valid() || int(h) > len(l.slots) {
		return nil, false
	}
	return l.slots[h-1], true
}

// State returns the load state of h.
func (l *Loader) State(h Handle) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.slot(h)
	if !ok {
		return NotLoaded
	}
	return s.state
}

// Clip returns the clip of a loaded handle.
func (l *Loader) Clip(h Handle) (*Clip, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.slot(h)
	if !ok || s.state != Loaded {
		return nil, false
	}
	return s.clip, true
}

// Err returns the failure of a failed handle.
func (l *Loader) Err(h Handle) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.slot(h)
	if !ok {
		return ErrInvalidHandle
	}
	return s.err
}

// Wait blocks until h is resolved or ctx is done.
func (l *Loader) Wait(ctx context.Context, h Handle) error {
	l.mu.RLock()
	s, ok := l.slot(h)
	l.mu.RUnlock()
	if !ok {
		return ErrInvalidHandle
	}
	select {
	case <-s.done:
		return l.Err(h)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadAll reads every manifest entry with at most limit concurrent reads.
// It returns the first failure; other entries keep loading.
func (l *Loader) LoadAll(ctx context.Context, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, name := range l.Manifest().Names() {
		h, s, created, ok := l.reserve(name)
		if !ok {
			continue
		}
		g.Go(func() error {
			if created {
				l.fetch(s)
			}
			return l.Wait(ctx, h)
		})
	}
	return g.Wait()
}
