// ABOUTME: Typed provider error taxonomy: network, provider, and protocol parse failures
// ABOUTME: All types support errors.As inspection and fmt %w wrapping

package ai

import "fmt"

// NetworkError is a transport-level failure reaching the provider.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError is a non-success answer from the provider itself,
// typically an HTTP error status with a diagnostic body.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// ParseError is a protocol violation in the provider's output: malformed
// tool-call arguments, conflicting tool-call identifiers, or a stream that
// cannot be assembled into a coherent response.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}
