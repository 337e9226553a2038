// Package repository persists events and tickets as flat record files.
// Every failure other than a missing file is reported as an *IOError so
// that callers can tell storage faults apart from domain outcomes such
// as an unknown event or a sold-out show.
package repository

import (
	"errors"
	"fmt"
)

// IOError describes a failed read, write or decode of a store file.
// Op is a short verb ("read", "write", "decode", "commit", ...) and Path
// is the file involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOError reports whether err (or anything it wraps) is an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

// ErrCommitPending marks a commit whose journal record is durable while
// some of its renames are not done yet.  The commit counts as made;
// Journal.Recover completes it.
var ErrCommitPending = errors.New("commit recorded, apply pending")

func pendingErr(err error) error {
	return fmt.Errorf("%w: %w", ErrCommitPending, err)
}
