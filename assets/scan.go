package assets

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"
)

// ScanOptions configures Scan.
type ScanOptions struct {
	Formats         []string
	DefaultDuration time.Duration
	// Probe measures a file; ProbeDuration when nil.
	Probe func(filename string) (time.Duration, error)
}

// Scan walks dir recursively and builds a manifest of every supported audio
// file. Files whose length cannot be probed get the default duration and a
// warning; they never fail the scan.
func Scan(dir string, opts ScanOptions) (*Manifest, error) {
	formats := opts.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	probe := opts.Probe
	if probe == nil {
		probe = ProbeDuration
	}
	fallback := opts.DefaultDuration
	if fallback <= 0 {
		fallback = DefaultDuration
	}

	var entries []Entry
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSupported(d.Name(), formats) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		duration, err := probe(p)
		if err != nil {
			slog.Warn("could not get duration for audio file, using default",
				"file", p, "default", fallback, "error", err)
			duration = fallback
		}
		entries = append(entries, Entry{Path: filepath.ToSlash(rel), Duration: duration})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: scan %s: %w", dir, err)
	}
	return NewManifest(fallback, entries...), nil
}
