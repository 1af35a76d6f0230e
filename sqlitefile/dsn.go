// Package sqlitefile turns filesystem paths into SQLite URI filenames.
package sqlitefile

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// DSN returns a "file:" URI for path with params as its query. The path is
// made absolute and percent-encoded, so '#', '?' and '%' in directory names
// reach SQLite intact.
func DSN(path string, params url.Values) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // drive letter paths
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: params.Encode()}
	return u.String(), nil
}
