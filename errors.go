package rebinder

import (
	"errors"
	"fmt"
)

// ErrMissingNSForSOA is returned when an SOA record is requested but no name
// server hostname is configured to act as the primary server.
var ErrMissingNSForSOA = errors.New("missing_ns_for_soa: no name server hostname configured")

// DecodeErrorKind classifies why an encoded name could not be decoded.
type DecodeErrorKind int

const (
	// MalformedLabelCount means the name has fewer than two labels.
	MalformedLabelCount DecodeErrorKind = iota + 1
	// MalformedHex means one of the two address labels isn't valid hex.
	MalformedHex
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedLabelCount:
		return "malformed label count"
	case MalformedHex:
		return "malformed hex"
	default:
		return "unknown"
	}
}

// DecodeError is returned when an encoded address pair can't be decoded from
// a query name.
type DecodeError struct {
	Kind  DecodeErrorKind
	Input string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode '%s': %s", e.Input, e.Kind)
}

// Is allows matching any DecodeError of the same kind, for example
// errors.Is(err, &DecodeError{Kind: MalformedHex}).
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ConfigError is returned for invalid server configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for '%s': %s", e.Field, e.Reason)
}
