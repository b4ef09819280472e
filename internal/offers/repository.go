package offers

import "context"

// Repository is the persistence contract for the offers ledger.
type Repository interface {
	// Add stores a new offer.
	Add(ctx context.Context, o *Offer) error
	// GetByID returns one offer or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*Offer, error)
	// ListByCapsule returns the offers for a capsule, newest first.
	ListByCapsule(ctx context.Context, capsuleID string) ([]*Offer, error)
	// UpdateStatus sets the status of an existing offer.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
