package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/collection"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/vault"
)

// RevisionService rewrites a capsule's public claims after the owner changes
// their disclosure settings. No value is ever re-derived from scratch and no
// salt is ever regenerated: claims are rebuilt from the vault's
// original-value snapshot, so they stay consistent with the commitments
// already on file.
type RevisionService struct {
	vault      *vault.Service
	collection collection.Repository
	logger     logging.Logger
}

// NewRevisionService returns a new RevisionService.
func NewRevisionService(v *vault.Service, coll collection.Repository, logger logging.Logger) *RevisionService {
	return &RevisionService{vault: v, collection: coll, logger: logger}
}

// Revise recomputes public claims for the capsule under the new settings,
// keeping capsule_id and proof unchanged, and atomically replaces the stored
// capsule. Without the vault record claims cannot be recomputed at all, so a
// missing vault yields ErrorNoOriginalValue rather than an empty claim set.
func (s *RevisionService) Revise(ctx context.Context, c *capsule.Capsule, settings *capsule.Settings) (*capsule.Capsule, error) {
	v, err := s.vault.Get(ctx, c.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: vault record for %s is gone", common.ErrorNoOriginalValue, c.ID)
		}
		return nil, err
	}

	claimList, err := buildClaims(v.OriginalValues, settings)
	if err != nil {
		return nil, err
	}
	wire := capsule.ClaimsToWire(claimList)

	// lock markers survive revision untouched
	for _, name := range []string{capsule.ClaimTimeLockUntil, capsule.ClaimTimeLockType, capsule.ClaimAllowedAddress} {
		if value, ok := c.PublicClaims[name]; ok {
			wire[name] = value
		}
	}

	revised := &capsule.Capsule{
		ID:           c.ID,
		PublicClaims: wire,
		Proof:        c.Proof,
		Metadata:     c.Metadata,
	}

	if err := s.collection.Save(ctx, revised); err != nil {
		return nil, fmt.Errorf("failed to replace capsule: %w", err)
	}

	s.logger.Info(ctx, "capsule claims revised", "capsule_id", c.ID, "claims", len(wire))
	return revised, nil
}
