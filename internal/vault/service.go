package vault

import (
	"context"
	"fmt"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/cryptox"
)

// Service seals vaults before they hit storage and opens them on the way
// back. It holds the derived master key for the session; the repository
// below it never sees plaintext.
type Service struct {
	repo      Repository
	masterKey []byte
}

// NewService returns a vault service sealing with the given master key.
func NewService(repo Repository, masterKey []byte) *Service {
	return &Service{repo: repo, masterKey: masterKey}
}

// Put seals and persists a vault. Failure here must abort capsule creation:
// a capsule without its vault can never be re-disclosed.
func (s *Service) Put(ctx context.Context, v *capsule.Vault) error {
	payload, nonce, err := cryptox.Seal(v, s.masterKey)
	if err != nil {
		return fmt.Errorf("failed to seal vault: %w", err)
	}

	rec := &Record{CapsuleID: v.CapsuleID, Payload: payload, Nonce: nonce}
	if err := s.repo.Put(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}
	return nil
}

// Get loads and opens the vault for a capsule id. Returns
// common.ErrorNotFound when no vault exists.
func (s *Service) Get(ctx context.Context, capsuleID string) (*capsule.Vault, error) {
	rec, err := s.repo.Get(ctx, capsuleID)
	if err != nil {
		return nil, err
	}

	var v capsule.Vault
	if err := cryptox.Open(rec.Payload, rec.Nonce, s.masterKey, &v); err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	return &v, nil
}

// Delete removes the vault for a capsule id.
func (s *Service) Delete(ctx context.Context, capsuleID string) error {
	return s.repo.Delete(ctx, capsuleID)
}
