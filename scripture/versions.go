package scripture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// versionExts are the file extensions recognised as version content files.
var versionExts = []string{".sqlite3", ".db"}

// DisplayName strips the content-file extension from a version file name.
func DisplayName(version string) string {
	for _, ext := range versionExts {
		version = strings.TrimSuffix(version, ext)
	}
	return version
}

// IsVersionFile reports whether name looks like a version content file.
func IsVersionFile(name string) bool {
	for _, ext := range versionExts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

// ListVersions returns the version file names found in dir, Chinese versions first.
func ListVersions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read versions dir: %w", err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() || !IsVersionFile(e.Name()) {
			continue
		}
		versions = append(versions, e.Name())
	}
	SortVersions(versions)
	return versions, nil
}

// SortVersions orders versions whose names contain Han characters before the
// rest; each group is sorted lexicographically.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		hi, hj := hasHan(versions[i]), hasHan(versions[j])
		if hi != hj {
			return hi
		}
		return versions[i] < versions[j]
	})
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// versionPath joins dir and version, rejecting names that would escape dir.
func versionPath(dir, version string) (string, error) {
	if version == "" || filepath.Base(version) != version || version == "." || version == ".." {
		return "", fmt.Errorf("invalid version name %q", version)
	}
	return filepath.Join(dir, version), nil
}
