// Package commitment binds raw field values to per-field salts with a real
// one-way hash. Values and salts are mapped into the BN254 scalar field and
// run through MiMC, the same hash the disclosure circuit evaluates, so a
// commitment placed in public claims is provable in-circuit.
package commitment

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/veilcam/veilcam/internal/randx"
)

// FieldElement reduces an arbitrary string into a BN254 scalar by hashing it
// with sha256 first. Deterministic by construction.
func FieldElement(s string) fr.Element {
	sum := sha256.Sum256([]byte(s))
	var e fr.Element
	e.SetBytes(sum[:])
	return e
}

// Commit computes the commitment of (value, salt): MiMC over the two field
// elements derived from value and salt. The output is the decimal field
// element string. Same inputs always yield the same output; recovering the
// value from the commitment requires inverting MiMC.
func Commit(value, salt string) string {
	dv := FieldElement(value)
	sv := FieldElement(salt)

	h := mimc.NewMiMC()
	db := dv.Bytes()
	sb := sv.Bytes()
	_, _ = h.Write(db[:])
	_, _ = h.Write(sb[:])

	return new(big.Int).SetBytes(h.Sum(nil)).String()
}

// DeriveCapsuleID derives the capsule identifier from the content hash and
// the creation timestamp, mixed with fresh randomness so repeated captures of
// identical content still get distinct ids.
func DeriveCapsuleID(contentHash string, createdAtMillis int64) (string, error) {
	nonce, err := randx.MakeRandHexString(8)
	if err != nil {
		return "", fmt.Errorf("failed to derive capsule id: %w", err)
	}

	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%s", contentHash, createdAtMillis, nonce))
	return fmt.Sprintf("cap_%x", sum[:8]), nil
}
