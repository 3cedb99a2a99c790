package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bridged-dev/bridged/internal/branding"
	"github.com/bridged-dev/bridged/internal/logging"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyNpmBin        = "npm_bin"
	KeyStoreDir      = "store_dir"
	KeyGlobalRoot    = "global_root"
	KeyMinNpmVersion = "min_npm_version"
)

// Default values applied when a key is unset.
const (
	DefaultNpmBin        = "npm"
	DefaultStoreDir      = "node_modules"
	DefaultMinNpmVersion = ">= 7.0.0"
)

// Keys lists every key the CLI understands, in display order.
var Keys = []string{KeyNpmBin, KeyStoreDir, KeyGlobalRoot, KeyMinNpmVersion}

// Settings is a typed snapshot of the configuration with defaults applied.
type Settings struct {
	NpmBin        string
	StoreDir      string
	GlobalRoot    string
	MinNpmVersion string
}

// Dir returns the path to the config directory (~/.bridged/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bridged/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyNpmBin, DefaultNpmBin)
	viper.SetDefault(KeyStoreDir, DefaultStoreDir)
	viper.SetDefault(KeyMinNpmVersion, DefaultMinNpmVersion)

	// A missing file just means defaults; anything else is worth a warning.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound) {
			return
		}
		logger := logging.GetLogger("config")
		logger.Warn().Err(err).Str("path", FilePath()).Msg("Ignoring unreadable config file; using defaults")
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is one of the recognized configuration keys.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Current returns the loaded settings. Load must have been called first.
func Current() Settings {
	s := Settings{
		NpmBin:        Get(KeyNpmBin),
		StoreDir:      Get(KeyStoreDir),
		GlobalRoot:    Get(KeyGlobalRoot),
		MinNpmVersion: Get(KeyMinNpmVersion),
	}
	if s.NpmBin == "" {
		s.NpmBin = DefaultNpmBin
	}
	if s.StoreDir == "" {
		s.StoreDir = DefaultStoreDir
	}
	if s.MinNpmVersion == "" {
		s.MinNpmVersion = DefaultMinNpmVersion
	}
	return s
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
