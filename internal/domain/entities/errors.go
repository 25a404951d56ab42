package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrWorkspaceLocked is returned when another build holds the workspace lock.
var ErrWorkspaceLocked = errors.New("workspace is locked by another build")

// NotFoundError reports a missing metadata document.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("metadata file %q not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports a metadata document that is not well-formed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingSourceError reports required mod content that does not exist.
type MissingSourceError struct {
	Path string
	Err  error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("required source %q is missing", e.Path)
}

func (e *MissingSourceError) Unwrap() error { return e.Err }

// TransferError reports a failed dependency fetch.
type TransferError struct {
	Dependency string
	Op         string
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("dependency %q: %s: %v", e.Dependency, e.Op, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// UnsupportedSourceError reports a dependency with an unknown source kind.
type UnsupportedSourceError struct {
	Dependency string
	Kind       string
	Supported  []string
}

func (e *UnsupportedSourceError) Error() string {
	msg := fmt.Sprintf("dependency %q has unsupported source kind %q", e.Dependency, e.Kind)
	if len(e.Supported) > 0 {
		msg += fmt.Sprintf(" (supported: %s)", strings.Join(e.Supported, ", "))
	}
	return msg
}

// VersionResolutionError reports a game version missing from a provider catalog.
type VersionResolutionError struct {
	Provider    string
	GameVersion string
}

func (e *VersionResolutionError) Error() string {
	return fmt.Sprintf("%s: no catalog entry matches game version %q", e.Provider, e.GameVersion)
}

// PublishError carries a provider failure together with the raw response body.
// Status is 0 when no HTTP response was received.
type PublishError struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *PublishError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: publish failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: publish failed (status %d): %s", e.Provider, e.Status, e.Body)
}

func (e *PublishError) Unwrap() error { return e.Err }
