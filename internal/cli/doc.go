// Package cli defines the Cobra command tree for the bridged CLI. Each file
// registers one top-level command (ls, link, unlink, doctor, config, version)
// with the root command. Commands delegate to the linker service and only
// handle arguments, flags and terminal output.
package cli
