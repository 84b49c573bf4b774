package source

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInputDirectory = errors.New("input directory does not exist or is not a directory")
	ErrMalformedInput        = errors.New("malformed JSON")
	ErrMissingField          = errors.New("missing 'flights_data' field")
	ErrMissingDestination    = errors.New("missing 'destination_iota'")
	ErrInvalidDestination    = errors.New("invalid 'destination_iota'")
	ErrProcessing            = errors.New("processing error")
)

// FileError reports a file that was skipped as a whole.
type FileError struct {
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EntryError reports a single search entry that was skipped.
type EntryError struct {
	Path  string
	Index int
	Kind  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: entry %d: %v", e.Path, e.Index, e.Kind)
}

func (e *EntryError) Unwrap() error {
	return e.Kind
}
