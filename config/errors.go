package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInteger is matched by every EnvError.
	ErrMalformedInteger = errors.New("malformed integer")
	ErrInvalidPage      = errors.New("invalid page number")
)

// EnvError reports an integer setting whose value could not be parsed.
type EnvError struct {
	Key   string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("%s: %s=%q: %v", ErrMalformedInteger, e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying *strconv.NumError.
func (e *EnvError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedInteger.
func (e *EnvError) Is(target error) bool {
	return target == ErrMalformedInteger
}
