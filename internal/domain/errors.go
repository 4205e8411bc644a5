package domain

import "errors"

// Sentinel errors shared across services and controllers.
var (
	// ErrNotFound signals a missing record (user profile or event).
	ErrNotFound = errors.New("not found")
	// ErrNoKeywords signals that no usable keywords could be extracted from
	// the stored preference profile. Callers map this to a validation error,
	// not an internal failure.
	ErrNoKeywords = errors.New("no meaningful keywords found in user preferences")
	// ErrUpstreamFormat signals that the model kept returning malformed output
	// after all retry attempts were exhausted.
	ErrUpstreamFormat = errors.New("model returned an invalid response after all retries")
	// ErrNoReply signals an empty completion from the model.
	ErrNoReply = errors.New("no response from model")
)
