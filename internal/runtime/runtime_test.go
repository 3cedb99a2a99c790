package runtime

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bridged-dev/bridged/internal/linkerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeTool writes an executable shell script named name into a temp dir
// and returns its path.
func writeFakeTool(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package manager scripts require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// recordingTool logs its working directory and arguments to $FAKE_LOG.
func recordingTool(t *testing.T, name string) (bin, logPath string) {
	t.Helper()
	logPath = filepath.Join(t.TempDir(), "calls.log")
	t.Setenv("FAKE_LOG", logPath)
	bin = writeFakeTool(t, name, `echo "$(pwd -P)|$*" >> "$FAKE_LOG"
echo "added 1 package"`)
	return bin, logPath
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestFlavor(t *testing.T) {
	tests := []struct {
		bin  string
		want string
	}{
		{"npm", FlavorNpm},
		{"/usr/local/bin/npm", FlavorNpm},
		{"pnpm", FlavorPnpm},
		{"/opt/pnpm/PNPM.exe", FlavorPnpm},
		{"/tmp/custom-wrapper", FlavorNpm},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Flavor(tt.bin), tt.bin)
	}
}

func TestDispatchDefaultsToNpm(t *testing.T) {
	assert.Equal(t, "npm", Dispatch("").Bin)
}

func TestGlobalRoot(t *testing.T) {
	bin := writeFakeTool(t, "npm", `if [ "$1" = "root" ] && [ "$2" = "-g" ]; then
  echo "/fake/lib/node_modules"
  exit 0
fi
exit 1`)

	root, err := Dispatch(bin).GlobalRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/fake/lib/node_modules", root)
}

func TestGlobalRootFailureCarriesStderr(t *testing.T) {
	bin := writeFakeTool(t, "npm", `echo "npm ERR! config broken" >&2
exit 3`)

	_, err := Dispatch(bin).GlobalRoot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, linkerr.ErrTool)
	assert.Contains(t, err.Error(), "exited with status 3")
	assert.Contains(t, err.Error(), "npm ERR! config broken")
}

func TestGlobalRootEmptyOutput(t *testing.T) {
	bin := writeFakeTool(t, "npm", `exit 0`)

	_, err := Dispatch(bin).GlobalRoot(context.Background())
	assert.ErrorIs(t, err, linkerr.ErrTool)
}

func TestMissingExecutable(t *testing.T) {
	rt := Dispatch(filepath.Join(t.TempDir(), "npm"))

	_, err := rt.GlobalRoot(context.Background())
	assert.ErrorIs(t, err, linkerr.ErrTool)

	err = rt.Link(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, linkerr.ErrTool)
	assert.Contains(t, err.Error(), "is not available")
}

func TestLinkRunsInPackageDir(t *testing.T) {
	bin, logPath := recordingTool(t, "npm")
	pkgDir := realTempDir(t)

	var stdout bytes.Buffer
	rt := Dispatch(bin)
	rt.Stdout = &stdout
	rt.Stderr = &bytes.Buffer{}
	rt.Stdin = strings.NewReader("")

	require.NoError(t, rt.Link(context.Background(), pkgDir))

	assert.Equal(t, []string{pkgDir + "|link"}, readCalls(t, logPath))
	assert.Contains(t, stdout.String(), "added 1 package")
}

func TestLinkPackageRunsInProjectDir(t *testing.T) {
	bin, logPath := recordingTool(t, "npm")
	projectDir := realTempDir(t)

	rt := Dispatch(bin)
	rt.Stdout = &bytes.Buffer{}
	rt.Stderr = &bytes.Buffer{}
	rt.Stdin = strings.NewReader("")

	require.NoError(t, rt.LinkPackage(context.Background(), projectDir, "@acme/widgets"))

	assert.Equal(t, []string{projectDir + "|link -- @acme/widgets"}, readCalls(t, logPath))
}

func TestLinkPackageEndsOptionsBeforeName(t *testing.T) {
	bin, logPath := recordingTool(t, "npm")
	projectDir := realTempDir(t)

	rt := Dispatch(bin)
	rt.Stdout = &bytes.Buffer{}
	rt.Stderr = &bytes.Buffer{}
	rt.Stdin = strings.NewReader("")

	require.NoError(t, rt.LinkPackage(context.Background(), projectDir, "--global"))

	assert.Equal(t, []string{projectDir + "|link -- --global"}, readCalls(t, logPath))
}

func TestPnpmFlavorArguments(t *testing.T) {
	bin, logPath := recordingTool(t, "pnpm")
	dir := realTempDir(t)

	rt := Dispatch(bin)
	rt.Stdout = &bytes.Buffer{}
	rt.Stderr = &bytes.Buffer{}
	rt.Stdin = strings.NewReader("")

	require.NoError(t, rt.Link(context.Background(), dir))
	require.NoError(t, rt.LinkPackage(context.Background(), dir, "foo"))

	assert.Equal(t, []string{dir + "|link --global", dir + "|link --global -- foo"}, readCalls(t, logPath))
}

func TestLinkFailureStreamsAndCapturesStderr(t *testing.T) {
	bin := writeFakeTool(t, "npm", `echo "npm ERR! code EACCES" >&2
exit 243`)

	var stderr bytes.Buffer
	rt := Dispatch(bin)
	rt.Stdout = &bytes.Buffer{}
	rt.Stderr = &stderr
	rt.Stdin = strings.NewReader("")

	err := rt.Link(context.Background(), t.TempDir())
	require.Error(t, err)

	var le *linkerr.Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "EXTERNAL_TOOL", string(le.Kind))
	assert.Equal(t, "npm ERR! code EACCES", le.Output)
	assert.Contains(t, stderr.String(), "npm ERR! code EACCES")
}

func TestVersion(t *testing.T) {
	bin := writeFakeTool(t, "npm", `echo "10.2.4"`)

	v, err := Dispatch(bin).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.2.4", v)
}

func TestTail(t *testing.T) {
	in := "a\n\nb\nc\nd\ne\nf\n"
	assert.Equal(t, "b; c; d; e; f", tail(in, 5))
	assert.Equal(t, "", tail("\n \n", 5))
}
