package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/timesource"
	"github.com/veilcam/veilcam/internal/vault"
)

// LockState is the display state of a conditional-disclosure lock.
type LockState string

const (
	StateLocked   LockState = "locked"
	StateUnlocked LockState = "unlocked"
)

// NoDataAvailable is shown on unlock when the private vault for the capsule
// is not locally available, so the locked payload cannot be recovered.
const NoDataAvailable = "no data available"

// Clock answers with the current trusted time.
type Clock interface {
	Now(ctx context.Context) timesource.Result
}

// TimeLockStatus is one observation of a capsule's time-lock.
type TimeLockStatus struct {
	State     LockState
	Until     time.Time
	Remaining time.Duration
	// TrustedTime is false when the observation used the local clock
	// because no external time source was reachable.
	TrustedTime bool
	// Payload is the unlocked content, or NoDataAvailable when the vault is
	// gone. Empty while locked.
	Payload string
}

// TimeLockService evaluates time-locks against trusted time. The vault
// service is optional; without it an unlocked capsule always shows
// NoDataAvailable.
type TimeLockService struct {
	clock        Clock
	vault        *vault.Service
	pollInterval time.Duration
}

// NewTimeLockService returns a new TimeLockService. vaultSvc may be nil.
func NewTimeLockService(clock Clock, vaultSvc *vault.Service, pollInterval time.Duration) *TimeLockService {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &TimeLockService{clock: clock, vault: vaultSvc, pollInterval: pollInterval}
}

// Status evaluates the capsule's time-lock once. Capsules without a time-lock
// yield (nil, nil). A time-lock can only go from locked to unlocked; whether
// the payload is exposed is decided fresh at each unlocked observation.
func (s *TimeLockService) Status(ctx context.Context, c *capsule.Capsule) (*TimeLockStatus, error) {
	raw, ok := c.PublicClaims[capsule.ClaimTimeLockUntil]
	if !ok {
		return nil, nil
	}

	until, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed %s", common.ErrorInvalidCapsule, capsule.ClaimTimeLockUntil)
	}

	now := s.clock.Now(ctx)
	st := &TimeLockStatus{Until: until, TrustedTime: now.Trusted}

	if now.Time.Before(until) {
		st.State = StateLocked
		st.Remaining = until.Sub(now.Time)
		return st, nil
	}

	st.State = StateUnlocked
	st.Payload = s.lockedPayload(ctx, c.ID, capsule.FieldTimeLockData)
	return st, nil
}

// Watch polls the lock once per interval and reports each observation until
// the lock unlocks or the context ends. The unlocked observation is final.
func (s *TimeLockService) Watch(ctx context.Context, c *capsule.Capsule, observe func(*TimeLockStatus)) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		st, err := s.Status(ctx, c)
		if err != nil {
			return err
		}
		if st == nil {
			return nil
		}
		observe(st)
		if st.State == StateUnlocked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *TimeLockService) lockedPayload(ctx context.Context, capsuleID string, field capsule.Field) string {
	if s.vault == nil {
		return NoDataAvailable
	}
	v, err := s.vault.Get(ctx, capsuleID)
	if err != nil {
		return NoDataAvailable
	}
	payload, ok := v.OriginalValues[field]
	if !ok {
		return NoDataAvailable
	}
	return payload
}
