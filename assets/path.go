package assets

import (
	"path"
	"path/filepath"
	"strings"
)

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	s = path.Clean(s)
	if s == "." {
		return ""
	}
	return strings.TrimPrefix(s, "./")
}

// IsSupported reports whether filename has one of the given extensions.
func IsSupported(filename string, formats []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, f := range formats {
		if strings.TrimPrefix(strings.ToLower(f), ".") == ext {
			return true
		}
	}
	return false
}
