package pokeapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every transport, timeout or HTTP status failure.
	ErrNetwork = errors.New("network error")
	// ErrDecode matches every malformed or unexpected payload.
	ErrDecode = errors.New("decode error")
	// ErrInvalidRange is returned for a start below 1 or a count below 1.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnimplemented is returned by Funcs fields left nil.
	ErrUnimplemented = errors.New("unimplemented")
)

// NetworkError reports a failed request. StatusCode is zero when no response
// arrived.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error: GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("network error: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// DecodeError reports a response body that could not be mapped to an entity.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
