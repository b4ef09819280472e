// Package services holds the orchestration layer of the capsule core: the
// assembler that turns capture metadata into a capsule plus its private
// vault, the capture flow that adds proving and storage around it, and the
// claim revision protocol.
package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/claims"
	"github.com/veilcam/veilcam/internal/commitment"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/randx"
	"github.com/veilcam/veilcam/internal/vault"
)

// TimeLockType is the only lock type currently issued.
const TimeLockType = "timed"

// seam for deterministic creation timestamps in tests
var timeNow = time.Now

// AssemblerService turns capture metadata and disclosure settings into a
// capsule and its private vault.
type AssemblerService struct {
	vault  *vault.Service
	logger logging.Logger
}

// NewAssemblerService returns a new AssemblerService.
func NewAssemblerService(v *vault.Service, logger logging.Logger) *AssemblerService {
	return &AssemblerService{vault: v, logger: logger}
}

// Assemble builds the capsule and its vault from one capture. The proof and
// verification key are copied in verbatim. imageSalt is the salt the proof was
// generated against for the image hash; when empty a fresh salt is drawn like
// for every other field.
//
// The vault is persisted before the capsule is returned. If persistence
// fails, the whole operation fails: a capsule without a vault could never
// have hidden claims revealed again.
func (s *AssemblerService) Assemble(ctx context.Context, meta *capsule.Metadata, settings *capsule.Settings,
	proof *capsule.Proof, verificationKey string, imageSalt string) (*capsule.Capsule, *capsule.Vault, error) {

	createdAt := timeNow().UnixMilli()

	id, err := commitment.DeriveCapsuleID(meta.PhotoHash, createdAt)
	if err != nil {
		return nil, nil, err
	}

	originals := snapshotOriginals(meta, settings)

	salts := make(map[capsule.Field]string, len(originals))
	commitments := make(map[capsule.Field]string, len(originals))
	for field, value := range originals {
		salt := imageSalt
		if field != capsule.FieldImageHash || salt == "" {
			salt, err = randx.MakeSalt()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate salt for %s: %w", field, err)
			}
		}
		salts[field] = salt
		commitments[field] = commitment.Commit(value, salt)
	}

	claimList, err := buildClaims(originals, settings)
	if err != nil {
		return nil, nil, err
	}
	claimList = append(claimList, lockClaims(settings)...)

	v := &capsule.Vault{
		CapsuleID:      id,
		Commitments:    commitments,
		Salts:          salts,
		OriginalValues: originals,
	}
	if err := s.vault.Put(ctx, v); err != nil {
		return nil, nil, fmt.Errorf("failed to persist vault: %w", err)
	}

	c := &capsule.Capsule{
		ID:           id,
		PublicClaims: capsule.ClaimsToWire(claimList),
		Proof:        proof,
		Metadata: capsule.Meta{
			ProofScheme:     common.ProofScheme,
			CircuitVersion:  common.CircuitVersion,
			ImageHash:       meta.PhotoHash,
			VerificationKey: verificationKey,
			ImageCID:        meta.CID,
			CreatedAt:       createdAt,
		},
	}

	s.logger.Info(ctx, "capsule assembled", "capsule_id", id, "claims", len(c.PublicClaims))
	return c, v, nil
}

// snapshotOriginals computes the original value of every candidate field from
// the capture metadata, plus the lock payloads when enabled. After this the
// metadata is no longer needed; revision works from this snapshot alone.
func snapshotOriginals(meta *capsule.Metadata, settings *capsule.Settings) map[capsule.Field]string {
	ov := make(map[capsule.Field]string, len(capsule.CandidateFields)+3)

	ov[capsule.FieldDateExact] = strconv.FormatInt(meta.Timestamp, 10)
	ov[capsule.FieldDateDay] = claims.TimeClaim(meta.Timestamp, capsule.TimeLevelDay)
	ov[capsule.FieldDateMonth] = claims.TimeClaim(meta.Timestamp, capsule.TimeLevelMonth)
	ov[capsule.FieldDateYear] = claims.TimeClaim(meta.Timestamp, capsule.TimeLevelYear)

	ov[capsule.FieldLocationExact] = claims.LocationClaim(meta.Location, capsule.LocationLevelExact)
	ov[capsule.FieldLocationCity] = claims.LocationClaim(meta.Location, capsule.LocationLevelCity)
	ov[capsule.FieldLocationCountry] = claims.LocationClaim(meta.Location, capsule.LocationLevelCountry)
	ov[capsule.FieldLocationContinent] = claims.LocationClaim(meta.Location, capsule.LocationLevelContinent)

	ov[capsule.FieldDeviceInfo] = meta.DeviceInfo
	ov[capsule.FieldDevicePlatform] = claims.DeviceClaim(meta.DeviceInfo, capsule.DeviceLevelPlatform)
	ov[capsule.FieldDeviceType] = claims.DeviceClaim(meta.DeviceInfo, capsule.DeviceLevelType)

	ov[capsule.FieldImageHash] = meta.PhotoHash
	if meta.CID != "" {
		ov[capsule.FieldImageCID] = meta.CID
	}

	if settings.TimeLock != nil {
		ov[capsule.FieldTimeLockData] = settings.TimeLock.Payload
	}
	if settings.ReceiverLock != nil {
		ov[capsule.FieldReceiverLockData] = settings.ReceiverLock.Payload
	}

	return ov
}

// buildClaims derives the content claims for every enabled disclosure toggle
// from the original-value snapshot. Disabled toggles contribute nothing at
// all; absence is the privacy signal. A toggle whose backing original value is
// missing from the snapshot yields ErrorNoOriginalValue.
func buildClaims(ov map[capsule.Field]string, settings *capsule.Settings) ([]capsule.Claim, error) {
	var out []capsule.Claim

	if settings.RevealTime {
		field := capsule.FieldForTimeLevel(settings.TimeLevel)
		value, ok := ov[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrorNoOriginalValue, field)
		}
		// exact, hour and week are formatted from the raw timestamp
		if field == capsule.FieldDateExact {
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s is not a timestamp", common.ErrorNoOriginalValue, field)
			}
			value = claims.TimeClaim(ts, settings.TimeLevel)
		}
		out = append(out, capsule.Text(string(field), value))
	}

	if settings.RevealLocation {
		field := capsule.FieldForLocationLevel(settings.LocationLevel)
		value, ok := ov[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrorNoOriginalValue, field)
		}
		out = append(out, capsule.Text(string(field), value))
	}

	if settings.RevealDevice {
		field := capsule.FieldForDeviceLevel(settings.DeviceLevel)
		value, ok := ov[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrorNoOriginalValue, field)
		}
		if settings.DeviceLevel == capsule.DeviceLevelIMEI {
			value = claims.DeviceClaim(value, capsule.DeviceLevelIMEI)
		}
		out = append(out, capsule.Text(string(field), value))
	}

	if settings.ProveDeviceTrusted {
		out = append(out, capsule.Boolean(capsule.ClaimDeviceTrusted, true))
	}

	if settings.RevealImageHash {
		value, ok := ov[capsule.FieldImageHash]
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrorNoOriginalValue, capsule.FieldImageHash)
		}
		out = append(out, capsule.Text(string(capsule.FieldImageHash), value))
	}

	return out, nil
}

// lockClaims returns the always-public lock markers. The locked payloads
// themselves never appear here; only their commitments exist outside the
// vault.
func lockClaims(settings *capsule.Settings) []capsule.Claim {
	var out []capsule.Claim
	if settings.TimeLock != nil {
		out = append(out,
			capsule.Text(capsule.ClaimTimeLockUntil, settings.TimeLock.Until.UTC().Format(time.RFC3339)),
			capsule.Text(capsule.ClaimTimeLockType, TimeLockType),
		)
	}
	if settings.ReceiverLock != nil {
		out = append(out, capsule.Text(capsule.ClaimAllowedAddress, settings.ReceiverLock.AllowedAddress))
	}
	return out
}
