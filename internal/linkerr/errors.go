// Package linkerr defines the error kinds surfaced by linking and unlinking.
//
// Every error is an *Error carrying a Kind. errors.Is matches on Kind, so
// callers test with the sentinel values:
//
//	if errors.Is(err, linkerr.ErrNotLinked) { ... }
//
// and use errors.As to reach the phase, package name and tool output.
package linkerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind string

const (
	// KindValidation is bad input detected before any external effect.
	KindValidation Kind = "VALIDATION"
	// KindTool is a failed or absent package manager invocation.
	KindTool Kind = "EXTERNAL_TOOL"
	// KindNotLinked is an unlink target that matches neither registry.
	KindNotLinked Kind = "NOT_LINKED"
	// KindRemove is a failed removal of a registry symlink.
	KindRemove Kind = "REMOVE"
)

// Sentinels for errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrTool       = &Error{Kind: KindTool}
	ErrNotLinked  = &Error{Kind: KindNotLinked}
	ErrRemove     = &Error{Kind: KindRemove}
)

// Error is a structured error with a kind and optional context.
type Error struct {
	Kind    Kind
	Phase   string // link phase or registry name, when relevant
	Name    string // package name, when relevant
	Message string
	Output  string // trailing tool output, for KindTool
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Phase != "" {
		b.WriteString(e.Phase)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	if e.Output != "" {
		b.WriteString(" (")
		b.WriteString(e.Output)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// WrapValidation returns a KindValidation error wrapping err.
func WrapValidation(err error, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// Tool returns a KindTool error for the given phase.
func Tool(phase string, err error, output string, format string, args ...any) *Error {
	return &Error{
		Kind:    KindTool,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Output:  output,
		Wrapped: err,
	}
}

// NotLinked returns a KindNotLinked error for name.
func NotLinked(name string) *Error {
	return &Error{Kind: KindNotLinked, Name: name, Message: fmt.Sprintf("package %q is not linked", name)}
}

// Remove returns a KindRemove error for the given registry.
func Remove(registry, name string, err error) *Error {
	return &Error{
		Kind:    KindRemove,
		Phase:   registry,
		Name:    name,
		Message: fmt.Sprintf("removing %s symlink for %q", registry, name),
		Wrapped: err,
	}
}
