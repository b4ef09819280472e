package verifier

import (
	"context"
	"fmt"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/zkbind"
)

// ProofChecker re-verifies a capsule's proof against the verification key it
// carries.
type ProofChecker struct {
	provider zkbind.Provider
}

// NewProofChecker returns a new ProofChecker.
func NewProofChecker(provider zkbind.Provider) *ProofChecker {
	return &ProofChecker{provider: provider}
}

// Check runs cryptographic verification of the capsule proof.
func (pc *ProofChecker) Check(ctx context.Context, c *capsule.Capsule) (bool, error) {
	if c.Metadata.ProofScheme != common.ProofScheme {
		return false, fmt.Errorf("%w: unsupported proof scheme %q", common.ErrorProofVerification, c.Metadata.ProofScheme)
	}
	return pc.provider.Verify(ctx, c.Proof, c.Metadata.VerificationKey)
}
