package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Read when the directory holds no package.json.
var ErrNotFound = errors.New("package.json not found")

// Path returns the manifest path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// ReadRaw returns the manifest bytes from dir.
func ReadRaw(fsys afero.Fs, dir string) ([]byte, error) {
	path := Path(dir)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes package.json bytes. path is used for error messages only.
func Parse(data []byte, path string) (*PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Read reads and parses the package.json in dir.
func Read(fsys afero.Fs, dir string) (*PackageManifest, error) {
	data, err := ReadRaw(fsys, dir)
	if err != nil {
		return nil, err
	}
	return Parse(data, Path(dir))
}

// ReadVersion returns the version declared by the package.json in dir, or
// UnknownVersion when the file is missing, unreadable, malformed, or has no
// string version. It never fails.
func ReadVersion(fsys afero.Fs, dir string) string {
	data, err := ReadRaw(fsys, dir)
	if err != nil {
		return UnknownVersion
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return UnknownVersion
	}
	version, ok := fields["version"].(string)
	if !ok || version == "" {
		return UnknownVersion
	}
	return version
}
