// Package vault persists the private counterpart of each capsule: the
// commitments, salts and original values that make later re-disclosure and
// lock-unlocking possible. Rows are sealed before they reach the repository;
// the repository itself only ever sees ciphertext.
package vault

import "context"

// Record is one sealed vault row.
type Record struct {
	CapsuleID string
	Payload   []byte
	Nonce     []byte
}

// Repository describes storage operations for sealed vault records.
type Repository interface {
	// Put inserts or replaces the record for its capsule id.
	Put(ctx context.Context, rec *Record) error

	// Get returns the record for the given capsule id, or
	// common.ErrorNotFound.
	Get(ctx context.Context, capsuleID string) (*Record, error)

	// Delete removes the record. Deleting an absent record is not an error:
	// a concurrent Get must simply observe not-found.
	Delete(ctx context.Context, capsuleID string) error
}
