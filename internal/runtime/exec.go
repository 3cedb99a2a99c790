package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bridged-dev/bridged/internal/linkerr"
	"github.com/bridged-dev/bridged/internal/logging"
)

// maxOutputLines bounds how much stderr is carried in an error.
const maxOutputLines = 5

// GlobalRoot runs `<bin> root -g` and returns its trimmed stdout.
func (r *Runtime) GlobalRoot(ctx context.Context) (string, error) {
	out, err := r.capture(ctx, "", r.commands().root)
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", linkerr.Tool(r.describe(r.commands().root), nil, "", "printed an empty global root")
	}
	return root, nil
}

// Link runs `<bin> link` inside dir.
func (r *Runtime) Link(ctx context.Context, dir string) error {
	return r.interactive(ctx, dir, r.commands().link)
}

// LinkPackage runs `<bin> link -- <name>` inside projectDir. The separator
// keeps the name from being parsed as an option.
func (r *Runtime) LinkPackage(ctx context.Context, projectDir, name string) error {
	args := append(append([]string{}, r.commands().linkPackage...), name)
	return r.interactive(ctx, projectDir, args)
}

// Version runs `<bin> --version`.
func (r *Runtime) Version(ctx context.Context) (string, error) {
	out, err := r.capture(ctx, "", []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// lookPath resolves the executable, reporting absence as a tool error.
func (r *Runtime) lookPath(args []string) (string, error) {
	bin, err := exec.LookPath(r.Bin)
	if err != nil {
		return "", linkerr.Tool(r.describe(args), err, "", "%s is not available", r.Bin)
	}
	return bin, nil
}

// capture runs a non-interactive command and returns its stdout.
func (r *Runtime) capture(ctx context.Context, dir string, args []string) (string, error) {
	bin, err := r.lookPath(args)
	if err != nil {
		return "", err
	}

	logging.LogCommand(bin, args, dir)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return "", r.toolError(args, err, stderrBuf.String())
	}
	return stdoutBuf.String(), nil
}

// interactive runs a command attached to the terminal, keeping a copy of
// stderr for the error message.
func (r *Runtime) interactive(ctx context.Context, dir string, args []string) error {
	bin, err := r.lookPath(args)
	if err != nil {
		return err
	}

	logging.LogCommand(bin, args, dir)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdin = r.stdin()

	var stderrBuf bytes.Buffer
	cmd.Stdout = r.stdout()
	cmd.Stderr = io.MultiWriter(r.stderr(), &stderrBuf)

	if err := cmd.Run(); err != nil {
		return r.toolError(args, err, stderrBuf.String())
	}
	return nil
}

func (r *Runtime) toolError(args []string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return linkerr.Tool(r.describe(args), err, tail(stderr, maxOutputLines), "exited with status %d", exitErr.ExitCode())
	}
	return linkerr.Tool(r.describe(args), err, tail(stderr, maxOutputLines), "could not run")
}

// describe renders the command for messages, e.g. "npm link foo".
func (r *Runtime) describe(args []string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.Bin, strings.Join(args, " ")))
}

// tail returns the last n non-empty lines of s, joined with "; ".
func tail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
