package archive

import (
	"errors"
	"fmt"
)

// ErrRetentionActive is returned when a delete is attempted before the
// record's retention period has elapsed.
var ErrRetentionActive = errors.New("retention period has not expired")

// NotFoundError is returned when no archived file exists for the given id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("archive not found: %d", e.ID)
}

// StorageError wraps a persistence failure (I/O, constraint violation,
// corruption) from the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IOError wraps a file read/write failure during store or restore.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
