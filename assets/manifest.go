package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultDuration is used for tracks whose length could not be probed.
const DefaultDuration = time.Second

// Entry describes one audio asset.
type Entry struct {
	// Path is the asset-relative slash path, also used as the track name.
	Path string `yaml:"path"`
	// ID is the CamelCase identifier derived from Path.
	ID       string        `yaml:"id"`
	Duration time.Duration `yaml:"duration"`
}

// Manifest is the table of known audio assets. It is immutable once built;
// rescanning produces a new manifest.
type Manifest struct {
	DefaultDuration time.Duration `yaml:"default_duration"`
	Entries         []Entry       `yaml:"entries"`

	byPath map[string]int
	byID   map[string]int
}

// NewManifest indexes entries. Entries without an ID get one derived from
// their path; later duplicates of a path replace earlier ones. When two
// paths share an ID the first path in sort order owns it.
func NewManifest(defaultDuration time.Duration, entries ...Entry) *Manifest {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	dedup := make(map[string]Entry, len(entries))
	for _, e := range entries {
		e.Path = cleanAssetPath(e.Path)
		if e.Path == "" {
			continue
		}
		if e.ID == "" {
			e.ID = Identifier(e.Path)
		}
		dedup[e.Path] = e
	}
	m := &Manifest{
		DefaultDuration: defaultDuration,
		Entries:         make([]Entry, 0, len(dedup)),
		byPath:          make(map[string]int, len(dedup)),
		byID:            make(map[string]int, len(dedup)),
	}
	for _, e := range dedup {
		m.Entries = append(m.Entries, e)
	}
	slices.SortFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.Path, b.Path) })
	for i, e := range m.Entries {
		m.byPath[e.Path] = i
		if prev, ok := m.byID[e.ID]; ok {
			slog.Warn("audio track id collision, track only reachable by path",
				"id", e.ID, "path", e.Path, "owner", m.Entries[prev].Path)
			continue
		}
		m.byID[e.ID] = i
	}
	return m
}

// Lookup finds an entry by path or by ID.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	if i, ok := m.byPath[cleanAssetPath(name)]; ok {
		return m.Entries[i], true
	}
	if i, ok := m.byID[name]; ok {
		return m.Entries[i], true
	}
	return Entry{}, false
}

// Duration returns the length of a track. Unknown tracks log a warning and
// fall back to the default duration.
func (m *Manifest) Duration(name string) time.Duration {
	if e, ok := m.Lookup(name); ok {
		return e.Duration
	}
	slog.Warn("audio length not found", "track", name)
	if m == nil {
		return DefaultDuration
	}
	return m.DefaultDuration
}

// Names returns every track path, sorted.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		names = append(names, e.Path)
	}
	return names
}

func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("assets: load manifest %s: %w", filename, err)
	}
	var raw Manifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest %s: %w", filename, err)
	}
	return NewManifest(raw.DefaultDuration, raw.Entries...), nil
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(filename string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("assets: marshal manifest: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("assets: write manifest %s: %w", filename, err)
	}
	return nil
}

// Identifier turns an asset path into a CamelCase identifier:
// "music/background.ogg" becomes "MusicBackgroundOGG".
func Identifier(assetPath string) string {
	clean := cleanAssetPath(assetPath)
	ext := path.Ext(clean)
	base := strings.TrimSuffix(clean, ext)

	var b strings.Builder
	for _, field := range strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		runes := []rune(field)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	b.WriteString(strings.ToUpper(strings.TrimPrefix(ext, ".")))
	return b.String()
}
