// Package platform provides the filesystem primitives shared by registry
// scanning and unlinking: detecting symlinks, resolving a link to a
// best-effort canonical path, and removing exactly one link. Operations take
// an afero.Fs so callers can swap the OS filesystem in tests; symlink-specific
// calls use afero's optional Lstater and LinkReader interfaces.
package platform
