package verifier

import (
	"context"
	"strings"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/vault"
)

// WalletLockStatus is one observation of a capsule's wallet-lock.
type WalletLockStatus struct {
	State          LockState
	AllowedAddress string
	// ConnectedWallet records the address presented at this observation,
	// matching or not.
	ConnectedWallet string
	// Payload is the unlocked content, or NoDataAvailable when the vault is
	// gone. Empty while locked.
	Payload string
}

// WalletLockService evaluates wallet-locks. Wallet connection itself is an
// external action; the service only judges the presented address. The vault
// service is optional.
type WalletLockService struct {
	vault *vault.Service
}

// NewWalletLockService returns a new WalletLockService. vaultSvc may be nil.
func NewWalletLockService(vaultSvc *vault.Service) *WalletLockService {
	return &WalletLockService{vault: vaultSvc}
}

// Connect evaluates the wallet-lock against a freshly connected wallet
// address. Capsules without a wallet-lock yield (nil, nil). Address matching
// is case-insensitive; an empty address means no wallet is connected. Unlike
// the time-lock, this lock swings both ways with each connection.
func (s *WalletLockService) Connect(ctx context.Context, c *capsule.Capsule, walletAddress string) (*WalletLockStatus, error) {
	allowed, ok := c.PublicClaims[capsule.ClaimAllowedAddress]
	if !ok {
		return nil, nil
	}

	st := &WalletLockStatus{
		AllowedAddress:  allowed,
		ConnectedWallet: walletAddress,
	}

	if walletAddress == "" || !strings.EqualFold(walletAddress, allowed) {
		st.State = StateLocked
		return st, nil
	}

	st.State = StateUnlocked
	st.Payload = s.lockedPayload(ctx, c.ID)
	return st, nil
}

func (s *WalletLockService) lockedPayload(ctx context.Context, capsuleID string) string {
	if s.vault == nil {
		return NoDataAvailable
	}
	v, err := s.vault.Get(ctx, capsuleID)
	if err != nil {
		return NoDataAvailable
	}
	payload, ok := v.OriginalValues[capsule.FieldReceiverLockData]
	if !ok {
		return NoDataAvailable
	}
	return payload
}
