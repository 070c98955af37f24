package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is returned when the dataset decodes to zero fabrics.
	ErrEmptyCatalog = errors.New("dataset contains no fabrics")

	// ErrUnsupportedSource is returned for dataset sources the loader cannot open.
	ErrUnsupportedSource = errors.New("unsupported dataset source")
)

// LoadError wraps any failure to load the dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
