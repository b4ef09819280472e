// Package zkbind is the thin binding to the zero-knowledge proving library.
// It exposes typed pass-through calls (setup, prove, verify) and contains no
// cryptographic logic of its own beyond witness packing.
package zkbind

import (
	"context"
	"fmt"
	"math/big"

	"github.com/veilcam/veilcam/internal/capsule"
)

// ProviderGnark is the only proving backend currently wired in.
const ProviderGnark = "gnark"

// Inputs are the circuit inputs for a disclosure proof: the secret digest and
// salt, and the public commitment they must hash to.
type Inputs struct {
	Digest     *big.Int
	Salt       *big.Int
	Commitment *big.Int
}

// Provider is the interface to a proving backend.
type Provider interface {
	// VerificationKey returns the serialized verifying key for the
	// disclosure circuit, running the one-time setup if needed.
	VerificationKey(ctx context.Context) (string, error)

	// Prove generates a proof for the given inputs. The returned proof
	// carries its public signals; the caller copies it verbatim into the
	// capsule.
	Prove(ctx context.Context, in Inputs) (*capsule.Proof, error)

	// Verify checks a proof against the given verifying key and the public
	// signals embedded in the proof.
	Verify(ctx context.Context, proof *capsule.Proof, verificationKey string) (bool, error)
}

// New resolves a proving backend by name.
func New(provider string) (Provider, error) {
	switch provider {
	case ProviderGnark:
		return InitGnarkProvider(), nil
	default:
		return nil, fmt.Errorf("unknown proving provider: %s", provider)
	}
}
