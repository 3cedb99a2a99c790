// Package linker links a local package folder into the current project and
// undoes it. Linking runs in two phases, each a package manager command: the
// package is first registered globally, then the global registration is
// linked into the project. The phases are not transactional; a failure in the
// second leaves the first in place and is reported as a partial result.
// Unlinking removes the registry symlinks directly.
package linker
