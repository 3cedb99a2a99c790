//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeNpm mimics the parts of npm that linking uses: `root -g`, `--version`,
// `link` (register the package in cwd globally) and `link -- <name>` (link a
// registered package into cwd/node_modules). FAKE_NPM_FAIL_GLOBAL and
// FAKE_NPM_FAIL_LOCAL make the respective link step fail.
const fakeNpm = `#!/bin/sh
GLOBAL="$FAKE_NPM_GLOBAL"
case "$1" in
  root)
    echo "$GLOBAL"
    ;;
  --version)
    echo "10.2.0"
    ;;
  link)
    shift
    [ "$1" = "--" ] && shift
    if [ -z "$1" ]; then
      if [ -n "$FAKE_NPM_FAIL_GLOBAL" ]; then
        echo "npm ERR! code EACCES" >&2
        echo "npm ERR! permission denied, symlink" >&2
        exit 243
      fi
      name=$(sed -n 's/.*"name"[[:space:]]*:[[:space:]]*"\([^"]*\)".*/\1/p' package.json | head -n 1)
      mkdir -p "$(dirname "$GLOBAL/$name")"
      ln -sfn "$(pwd -P)" "$GLOBAL/$name"
    else
      if [ -n "$FAKE_NPM_FAIL_LOCAL" ] || [ ! -e "$GLOBAL/$1" ]; then
        echo "npm ERR! 404 '$1' is not in this registry." >&2
        exit 1
      fi
      mkdir -p "$(dirname "node_modules/$1")"
      ln -sfn "$GLOBAL/$1" "node_modules/$1"
    fi
    ;;
  *)
    echo "unknown command: $1" >&2
    exit 1
    ;;
esac
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	Base       string // canonical temp root
	Home       string // HOME, so config reads ~/.bridged from here
	ProjectDir string // the project being linked into; also the cwd
	GlobalRoot string // what the fake `npm root -g` prints
	SourceDir  string // where source packages live
	NpmBin     string // path to the fake npm
}

// setupTestEnv creates isolated directories, installs the fake npm and
// changes into the project directory. Everything is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake npm is a shell script")
	}

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	env := &testEnv{
		Base:       base,
		Home:       filepath.Join(base, "home"),
		ProjectDir: filepath.Join(base, "app"),
		GlobalRoot: filepath.Join(base, "prefix", "lib", "node_modules"),
		SourceDir:  filepath.Join(base, "src"),
		NpmBin:     filepath.Join(base, "bin", "npm"),
	}
	for _, dir := range []string{env.Home, env.ProjectDir, env.GlobalRoot, env.SourceDir, filepath.Dir(env.NpmBin)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	writeFile(t, env.NpmBin, fakeNpm)
	if err := os.Chmod(env.NpmBin, 0755); err != nil {
		t.Fatalf("chmod fake npm: %v", err)
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("FAKE_NPM_GLOBAL", env.GlobalRoot)
	t.Setenv("FAKE_NPM_FAIL_GLOBAL", "")
	t.Setenv("FAKE_NPM_FAIL_LOCAL", "")
	t.Chdir(env.ProjectDir)

	return env
}

// writePackage creates a source package with a package.json and returns its
// directory.
func (e *testEnv) writePackage(t *testing.T, dirName, name, version string) string {
	t.Helper()
	dir := filepath.Join(e.SourceDir, dirName)
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "`+name+`",
  "version": "`+version+`",
  "main": "index.js"
}
`)
	return dir
}

// writeFile creates a file and any missing parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertSymlink fails unless path is a symlink.
func assertSymlink(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("expected %s to be a symlink", path)
	}
}

// assertNotExist fails if anything exists at path.
func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be gone (lstat err: %v)", path, err)
	}
}
