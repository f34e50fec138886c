package source

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult means the payload was valid but held no usable records
	ErrEmptyResult = errors.New("no usable facts in response")

	// ErrBodyTooLarge means the response exceeded http.max_body_bytes
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrDisallowed means robots.txt forbids the request
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// TransportError is a network failure or a non-2xx response
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is a payload that could not be decoded
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsLoadFailure reports whether err is one of the terminal load errors:
// transport, parse or empty result.
func IsLoadFailure(err error) bool {
	var te *TransportError
	var pe *ParseError
	return errors.As(err, &te) || errors.As(err, &pe) || errors.Is(err, ErrEmptyResult)
}

// ValidateDate rejects month/day values outside 1–12 / 1–31
func ValidateDate(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("invalid day %d: must be 1-31", day)
	}
	return nil
}
