package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotSymlink is returned when a path expected to be a symlink is not one.
var ErrNotSymlink = errors.New("not a symbolic link")

// Canonicalizer fully resolves a path through any chain of links.
type Canonicalizer func(path string) (string, error)

// EvalSymlinks canonicalizes against the real OS filesystem.
var EvalSymlinks Canonicalizer = filepath.EvalSymlinks

// Lstat returns file info for path without following a trailing symlink.
// Filesystems without Lstat support fall back to Stat.
func Lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// IsSymlink reports whether path is itself a symbolic link.
func IsSymlink(fsys afero.Fs, path string) (bool, error) {
	info, err := Lstat(fsys, path)
	if err != nil {
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// ReadSymlinkTarget returns the literal target string of a symlink.
func ReadSymlinkTarget(fsys afero.Fs, path string) (string, error) {
	r, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", &os.PathError{Op: "readlink", Path: path, Err: afero.ErrNoReadlink}
	}
	return r.ReadlinkIfPossible(path)
}

// ResolveTarget turns a literal link target into an absolute path. A relative
// target is joined to the link's own parent directory, never the working
// directory. The result is canonicalized when possible; when canonicalization
// fails (broken target, cycle, permission) the single-hop path is returned.
func ResolveTarget(linkPath, target string, canon Canonicalizer) string {
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(linkPath), target)
	}
	resolved = filepath.Clean(resolved)
	if !filepath.IsAbs(resolved) {
		if abs, err := filepath.Abs(resolved); err == nil {
			resolved = abs
		}
	}

	if canon == nil {
		return resolved
	}
	canonical, err := canon(resolved)
	if err != nil {
		return resolved
	}
	if !filepath.IsAbs(canonical) {
		return resolved
	}
	return canonical
}

// ResolveSymlink reads the link at path and resolves it with ResolveTarget.
// The only error is failing to read the link itself.
func ResolveSymlink(fsys afero.Fs, path string, canon Canonicalizer) (string, error) {
	target, err := ReadSymlinkTarget(fsys, path)
	if err != nil {
		return "", err
	}
	return ResolveTarget(path, target, canon), nil
}

// RemoveSymlink removes the symlink at path. It refuses to touch anything that
// is not a symlink so a real directory is never deleted. A missing path is
// reported with an error satisfying errors.Is(err, os.ErrNotExist).
func RemoveSymlink(fsys afero.Fs, path string) error {
	isLink, err := IsSymlink(fsys, path)
	if err != nil {
		return err
	}
	if !isLink {
		return fmt.Errorf("%s: %w", path, ErrNotSymlink)
	}
	return fsys.Remove(path)
}
