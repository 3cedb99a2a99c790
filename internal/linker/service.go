package linker

import (
	"context"
	"io"
	"os"

	"github.com/bridged-dev/bridged/internal/config"
	"github.com/bridged-dev/bridged/internal/logging"
	"github.com/bridged-dev/bridged/internal/registry"
	"github.com/bridged-dev/bridged/internal/runtime"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Service exposes the scan, link and unlink operations. Registries are
// located and scanned afresh on every call.
type Service struct {
	Fs      afero.Fs
	Scanner *registry.Scanner
	Locator *registry.Locator
	PM      runtime.PackageManager

	// Out receives progress lines; nil discards them.
	Out io.Writer

	logger zerolog.Logger
}

// New builds a Service from settings, backed by the OS filesystem and the
// configured package manager.
func New(settings config.Settings, out io.Writer) *Service {
	pm := runtime.Dispatch(settings.NpmBin)
	return &Service{
		Fs:      afero.NewOsFs(),
		Scanner: registry.NewScanner(),
		Locator: &registry.Locator{
			StoreDir:           settings.StoreDir,
			GlobalRootOverride: settings.GlobalRoot,
			Finder:             pm,
			Getwd:              os.Getwd,
		},
		PM:     pm,
		Out:    out,
		logger: logging.GetLogger("linker"),
	}
}

// ScanLocal returns the packages linked into the current project. Failing to
// determine the project directory yields an empty result.
func (s *Service) ScanLocal(ctx context.Context) []registry.LinkedPackage {
	root, err := s.Locator.LocalRoot()
	if err != nil {
		return nil
	}
	return s.Scanner.Scan(root.Path)
}

// ScanGlobal returns the packages linked into the global registry. An absent
// or failing package manager yields an empty result.
func (s *Service) ScanGlobal(ctx context.Context) []registry.LinkedPackage {
	root, err := s.Locator.GlobalRoot(ctx)
	if err != nil {
		return nil
	}
	return s.Scanner.Scan(root.Path)
}

func (s *Service) progress() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}
