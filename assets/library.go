package assets

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Library ties an asset directory to a manifest and a loader and keeps both
// current while the directory changes.
type Library struct {
	dir    string
	opts   ScanOptions
	loader *Loader

	group singleflight.Group

	mu       sync.Mutex
	onChange []func(*Manifest)
}

// OpenLibrary scans dir and returns a library whose loader reads from it.
func OpenLibrary(dir string, opts ScanOptions) (*Library, error) {
	m, err := Scan(dir, opts)
	if err != nil {
		return nil, err
	}
	return NewLibrary(dir, opts, m), nil
}

// NewLibrary wraps an existing manifest, for example one loaded with
// LoadManifest.
func NewLibrary(dir string, opts ScanOptions, m *Manifest) *Library {
	return &Library{
		dir:    dir,
		opts:   opts,
		loader: NewLoader(os.DirFS(dir), m),
	}
}

func (l *Library) Dir() string         { return l.dir }
func (l *Library) Loader() *Loader     { return l.loader }
func (l *Library) Manifest() *Manifest { return l.loader.Manifest() }

// OnChange registers fn to run after every successful rescan.
func (l *Library) OnChange(fn func(*Manifest)) {
	l.mu.Lock()
	l.onChange = append(l.onChange, fn)
	l.mu.Unlock()
}

// Rescan rebuilds the manifest from disk. Concurrent calls share one scan.
func (l *Library) Rescan() (*Manifest, error) {
	v, err, _ := l.group.Do(l.dir, func() (any, error) {
		m, err := Scan(l.dir, l.opts)
		if err != nil {
			return nil, err
		}
		l.loader.SetManifest(m)

		l.mu.Lock()
		callbacks := slices.Clone(l.onChange)
		l.mu.Unlock()
		for _, fn := range callbacks {
			fn(m)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Manifest), nil
}

// Watch rescans whenever an audio file below the directory changes. It
// blocks until ctx is done.
func (l *Library) Watch(ctx context.Context) error {
	w, err := NewWatcher(l.dir, l.opts.Formats)
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			m, err := l.Rescan()
			if err != nil {
				slog.Warn("audio rescan failed", "trigger", name, "error", err)
				continue
			}
			slog.Info("audio assets reloaded", "trigger", name, "tracks", m.Len())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("audio watcher error", "error", err)
		}
	}
}
