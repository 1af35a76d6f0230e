package sqlitefile

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNEscapesPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my#data", "a?b", "50%")
	dsn, err := DSN(filepath.Join(dir, "和合本.sqlite3"), url.Values{"mode": {"ro"}, "_busy_timeout": {"5000"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dsn, "file:///"), dsn)
	assert.Equal(t, 1, strings.Count(dsn, "?"), "only the query separator may be a raw '?': %s", dsn)
	assert.NotContains(t, dsn, "#")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "和合本.sqlite3")), u.Path)
	assert.Equal(t, "ro", u.Query().Get("mode"))
	assert.Equal(t, "5000", u.Query().Get("_busy_timeout"))
}

func TestDSNRelativePath(t *testing.T) {
	dsn, err := DSN(filepath.Join("notes", "note.db"), nil)
	require.NoError(t, err)

	abs, err := filepath.Abs(filepath.Join("notes", "note.db"))
	require.NoError(t, err)
	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), u.Path)
	assert.Empty(t, u.RawQuery)
}
