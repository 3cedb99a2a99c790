package linker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bridged-dev/bridged/internal/registry"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// fakePM stands in for npm. When link behavior is enabled it creates the
// same symlinks npm would: <global>/<name> -> package dir, and
// <project>/node_modules/<name> -> <global>/<name>.
type fakePM struct {
	globalRoot string
	rootErr    error
	linkErr    error
	pkgErr     error

	linkCalls []string
	pkgCalls  [][2]string
	rootCalls int

	nameForDir map[string]string
}

func (f *fakePM) GlobalRoot(context.Context) (string, error) {
	f.rootCalls++
	return f.globalRoot, f.rootErr
}

func (f *fakePM) Link(_ context.Context, dir string) error {
	f.linkCalls = append(f.linkCalls, dir)
	if f.linkErr != nil {
		return f.linkErr
	}
	name, ok := f.nameForDir[dir]
	if !ok {
		return errors.New("fakePM: unknown package dir " + dir)
	}
	link := filepath.Join(f.globalRoot, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return err
	}
	_ = os.Remove(link)
	return os.Symlink(dir, link)
}

func (f *fakePM) LinkPackage(_ context.Context, projectDir, name string) error {
	f.pkgCalls = append(f.pkgCalls, [2]string{projectDir, name})
	if f.pkgErr != nil {
		return f.pkgErr
	}
	link := filepath.Join(projectDir, "node_modules", filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return err
	}
	_ = os.Remove(link)
	return os.Symlink(filepath.Join(f.globalRoot, filepath.FromSlash(name)), link)
}

func (f *fakePM) Version(context.Context) (string, error) { return "10.0.0", nil }

func (f *fakePM) calls() int { return len(f.linkCalls) + len(f.pkgCalls) }

type testEnv struct {
	ProjectDir string
	LocalRoot  string
	GlobalRoot string
	SourceDir  string
	PM         *fakePM
	Service    *Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlink semantics differ on Windows")
	}

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		ProjectDir: filepath.Join(base, "app"),
		GlobalRoot: filepath.Join(base, "global", "lib", "node_modules"),
		SourceDir:  filepath.Join(base, "src"),
	}
	env.LocalRoot = filepath.Join(env.ProjectDir, "node_modules")
	for _, dir := range []string{env.ProjectDir, env.GlobalRoot, env.SourceDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	env.PM = &fakePM{globalRoot: env.GlobalRoot, nameForDir: map[string]string{}}
	env.Service = &Service{
		Fs:      afero.NewOsFs(),
		Scanner: registry.NewScanner(),
		Locator: &registry.Locator{
			StoreDir: "node_modules",
			Finder:   env.PM,
			Getwd:    func() (string, error) { return env.ProjectDir, nil },
		},
		PM: env.PM,
	}
	return env
}

// writePackage creates a source package and registers it with the fake PM.
func (e *testEnv) writePackage(t *testing.T, dirName, name, version string) string {
	t.Helper()
	dir := filepath.Join(e.SourceDir, dirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `{"name":"` + name + `","version":"` + version + `"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644))
	e.PM.nameForDir[dir] = name
	return dir
}

// linkLocalOnly creates only the project-side symlink for name -> target.
func (e *testEnv) linkLocalOnly(t *testing.T, name, target string) string {
	t.Helper()
	link := filepath.Join(e.LocalRoot, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link))
	return link
}

// linkGlobalOnly creates only the global symlink for name -> target.
func (e *testEnv) linkGlobalOnly(t *testing.T, name, target string) string {
	t.Helper()
	link := filepath.Join(e.GlobalRoot, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link))
	return link
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be gone, lstat err = %v", path, err)
	}
}

func assertSymlink(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("expected %s to be a symlink, mode = %v", path, info.Mode())
	}
}
