package domain

import "errors"

var (
	// ErrNotFound is returned when an object id does not resolve on the ledger
	ErrNotFound = errors.New("object not found")

	// ErrInvalidAmount is returned when a builder receives a non-positive or malformed amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAccessDenied is returned when no valid listen capability exists or the
	// authorization simulation rejected the candidate
	ErrAccessDenied = errors.New("access denied")

	// ErrUpstreamUnavailable is returned on ledger or storage transport failures
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedMetadata is returned when a record or metadata document fetched
	// successfully but did not decode into the expected shape
	ErrMalformedMetadata = errors.New("malformed metadata")
)
