package config

import (
	"errors"
	"fmt"
	"io/fs"
)

// NotFoundError is returned when no managed config exists under the given
// name, or its backing file is gone when it must be present.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config not found: %s", e.Name)
}

// ExistsError is returned when a create or add would clash with an
// existing managed config or on-disk file.
type ExistsError struct {
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("config already exists: %s", e.Name)
}

// InvalidFormatError is returned when a file's extension does not map to a
// supported format.
type InvalidFormatError struct {
	Path   string
	Detail string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format for %s: %s", e.Path, e.Detail)
}

// ValidationError wraps a content rejection from the Validator
// collaborator.
type ValidationError struct {
	Name string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid content for %s: %v", e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IOError wraps a file-system failure, keeping permission problems
// distinguishable via errors.Is(err, fs.ErrPermission).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if errors.Is(e.Err, fs.ErrPermission) {
		return fmt.Sprintf("permission denied: %s", e.Path)
	}
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
