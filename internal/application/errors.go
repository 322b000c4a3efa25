package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for the word loading pipeline
var (
	ErrCacheUnavailable = errors.New("cache unavailable")
	ErrCacheWrite       = errors.New("cache write failed")
	ErrNetwork          = errors.New("network error")
	ErrParse            = errors.New("parse error")
	ErrLoadFailed       = errors.New("load failed")
)

// LoadError represents a failed load attempt.
// Kind is ErrNetwork or ErrParse.
type LoadError struct {
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load failed: %v", e.Err)
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed || (e.Kind != nil && target == e.Kind)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// newLoadError classifies a source failure
func newLoadError(err error) *LoadError {
	kind := ErrNetwork
	if errors.Is(err, ErrParse) {
		kind = ErrParse
	}
	return &LoadError{Kind: kind, Err: err}
}
