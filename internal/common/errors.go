// Package common defines shared constants and sentinel errors used across
// VeilCam components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Capsule parsing and verification errors. ErrorInvalidCapsule covers
	// structural problems with the capsule itself; ErrorFetch covers a failed
	// network dereference of a capsule URL and must stay distinguishable from
	// an invalid capsule.
	ErrorInvalidCapsule = errors.New("invalid capsule")
	ErrorFetch          = errors.New("fetch failed")

	// State-consistency errors: the capsule is valid, but the requested
	// operation cannot proceed because the private vault no longer holds the
	// original value.
	ErrorNoOriginalValue = errors.New("no original value available")

	// Proving-library errors.
	ErrorProofGeneration   = errors.New("proof generation failed")
	ErrorProofVerification = errors.New("proof verification failed")

	// Offer lifecycle errors.
	ErrorOfferNotPending = errors.New("offer is not pending")
)
