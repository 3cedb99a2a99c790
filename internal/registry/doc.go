// Package registry discovers linked packages. A registry is a directory
// (a project's node_modules, or npm's global root) holding one entry per
// installed dependency; entries that are symlinks are "linked". Scanning is
// read-only and best-effort: unreadable entries are dropped and a missing
// root is an empty registry. Nothing is cached between calls.
package registry
