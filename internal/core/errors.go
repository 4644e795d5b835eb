package core

import "errors"

var (
	// ErrRemoteUnavailable marks a failed call to the ledger or the
	// classifier. It is logged and degraded, never surfaced as a crash.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrMalformedClassification marks classifier output that is not valid
	// structured data or does not match one of the recognized shapes.
	ErrMalformedClassification = errors.New("malformed classification")

	// ErrInvalidAmount marks a non-positive or unparseable amount on a
	// manual command.
	ErrInvalidAmount = errors.New("invalid amount")
)
