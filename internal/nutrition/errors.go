package nutrition

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ConfigurationError reports credentials or settings missing at startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nutrition client is not configured: missing %s", strings.Join(e.Missing, ", "))
}

// InvalidInputError reports a query that cannot be sent to a provider.
type InvalidInputError struct {
	Query  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid nutrition query %q: %s", e.Query, e.Reason)
}

// UpstreamError reports a failed call to the nutrition service. StatusCode is
// zero when no response was received (transport failure or timeout), in which
// case Err holds the cause.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("nutrition service returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("nutrition service request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call was abandoned because its deadline expired.
func (e *UpstreamError) Timeout() bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsConfiguration reports whether err is or wraps a *ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsInvalidInput reports whether err is or wraps an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is or wraps an *UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}
