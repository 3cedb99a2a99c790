// Package runtime drives the external package manager. It knows three
// commands: printing the global install root, creating a global link for the
// package in a directory, and linking a named package into a project. Link
// commands inherit the terminal so prompts and progress stay interactive,
// while a copy of stderr is kept for error messages.
package runtime
