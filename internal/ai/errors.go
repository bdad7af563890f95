package ai

import (
	"errors"
	"fmt"
)

// ConfigError reports a misconfiguration that makes a dispatch impossible:
// an unknown model id, a missing API key, or an image sent to a text-only
// model. Config errors surface immediately; nothing is sent and nothing is
// recorded.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "ai config error: " + e.Reason
}

// Is lets errors.Is match any ConfigError against the bare sentinel values
// below regardless of wrapping.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && (t.Reason == "" || t.Reason == e.Reason)
}

var (
	ErrUnknownModel        = &ConfigError{Reason: "unknown model id"}
	ErrMissingAPIKey       = &ConfigError{Reason: "no API key configured for provider"}
	ErrUnsupportedModality = &ConfigError{Reason: "model does not support image input"}
)

// TransportError wraps a network or HTTP-level failure from the provider.
// It is never retried by the engine; re-dispatching is the caller's call.
type TransportError struct {
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai transport error: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("ai transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

var (
	// ErrNoContent means the provider answered but no assistant text could be
	// extracted. Callers treat the result as indeterminate.
	ErrNoContent = errors.New("no content in provider response")

	// ErrDecodeFailure means the extracted JSON did not match the expected
	// task shape. Soft failure: indeterminate result, no ledger record.
	ErrDecodeFailure = errors.New("response did not decode into expected shape")
)
