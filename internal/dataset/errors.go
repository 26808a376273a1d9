package dataset

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable matches any *SourceUnavailableError via errors.Is.
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceUnavailableError indicates a source file is missing, unreadable, or
// structurally different from what its loader expects.
type SourceUnavailableError struct {
	Source string
	Path   string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e == nil {
		return ErrSourceUnavailable.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s source unavailable (%s): %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

// Unavailable builds a SourceUnavailableError.
func Unavailable(source, path string, err error) error {
	return &SourceUnavailableError{Source: source, Path: path, Err: err}
}

// MissingColumnError reports a required column that is absent from a header.
type MissingColumnError struct {
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q (have %v)", e.Column, e.Header)
}
