// Package config manages user-level settings stored at ~/.bridged/config.yaml.
// Every key can be overridden from the environment with the BRIDGED_ prefix,
// e.g. BRIDGED_NPM_BIN or BRIDGED_GLOBAL_ROOT.
package config
