// Package collection persists the local capsule gallery. Capsules are stored
// as their wire JSON so what the gallery holds is exactly what would be
// shared.
package collection

import (
	"context"

	"github.com/veilcam/veilcam/internal/capsule"
)

// Repository describes storage operations for the capsule gallery.
type Repository interface {
	// Save inserts a capsule or atomically replaces the stored
	// representation with the same id (the revision protocol's replace
	// step).
	Save(ctx context.Context, c *capsule.Capsule) error

	// GetByID returns a capsule by id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*capsule.Capsule, error)

	// GetAll returns all capsules, newest first.
	GetAll(ctx context.Context) ([]*capsule.Capsule, error)

	// Delete removes a capsule from the gallery.
	Delete(ctx context.Context, id string) error
}
