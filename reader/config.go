package reader

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirEnv overrides the default data root.
const DataDirEnv = "READER_DATA_DIR"

// DefaultVersion is opened on start when present.
const DefaultVersion = "和合本"

// Config locates the reader's data.
type Config struct {
	// VersionsDir holds one content file per version.
	VersionsDir string
	// NotesPath is the note store file.
	NotesPath string
	// PreferredVersion is opened on start, by file or display name.
	PreferredVersion string
}

// ConfigFor lays out the data directories under root.
func ConfigFor(root string) Config {
	return Config{
		VersionsDir:      filepath.Join(root, "sqlite"),
		NotesPath:        filepath.Join(root, "notes", "note.db"),
		PreferredVersion: DefaultVersion,
	}
}

// DataRoot resolves the data root: the flag value, then $READER_DATA_DIR,
// then the user config directory.
func DataRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "bible_reader"), nil
}

// Prepare creates the data directories so first-run succeeds.
func (c Config) Prepare() error {
	for _, dir := range []string{c.VersionsDir, filepath.Dir(c.NotesPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}
