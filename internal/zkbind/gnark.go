package zkbind

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
)

// GnarkProvider proves and verifies disclosure circuits with gnark's Groth16
// backend over BN254. Compilation and setup run once, lazily.
type GnarkProvider struct {
	curveID ecc.ID

	once     sync.Once
	setupErr error
	ccs      constraint.ConstraintSystem
	pk       groth16.ProvingKey
	vk       groth16.VerifyingKey
}

// InitGnarkProvider initializes a new GnarkProvider instance.
func InitGnarkProvider() *GnarkProvider {
	return &GnarkProvider{curveID: ecc.BN254}
}

func (p *GnarkProvider) setup() error {
	p.once.Do(func() {
		ccs, err := frontend.Compile(p.curveID.ScalarField(), r1cs.NewBuilder, &DisclosureCircuit{})
		if err != nil {
			p.setupErr = fmt.Errorf("failed to compile disclosure circuit: %w", err)
			return
		}

		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			p.setupErr = fmt.Errorf("failed to run groth16 setup: %w", err)
			return
		}

		p.ccs = ccs
		p.pk = pk
		p.vk = vk
	})
	return p.setupErr
}

// VerificationKey returns the hex-serialized verifying key.
func (p *GnarkProvider) VerificationKey(ctx context.Context) (string, error) {
	if err := p.setup(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := p.vk.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize verifying key: %w", err)
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// Prove generates a Groth16 proof for the given inputs and packs it into the
// capsule wire shape (snarkjs-style components plus the raw serialized proof).
func (p *GnarkProvider) Prove(ctx context.Context, in Inputs) (*capsule.Proof, error) {
	if err := p.setup(); err != nil {
		return nil, err
	}

	assignment := &DisclosureCircuit{
		Digest:     in.Digest,
		Salt:       in.Salt,
		Commitment: in.Commitment,
	}

	witness, err := frontend.NewWitness(assignment, p.curveID.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorProofGeneration, err)
	}

	proof, err := groth16.Prove(p.ccs, p.pk, witness)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorProofGeneration, err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: failed to serialize proof: %v", common.ErrorProofGeneration, err)
	}

	wire := &capsule.Proof{
		Protocol:      common.ProofScheme,
		Curve:         common.ProofCurve,
		Raw:           hex.EncodeToString(buf.Bytes()),
		PublicSignals: []string{in.Commitment.String()},
	}

	// expose the snarkjs-style structural components for parsers that only
	// check presence
	if bn, ok := proof.(*groth16_bn254.Proof); ok {
		wire.PiA = []string{bn.Ar.X.String(), bn.Ar.Y.String()}
		wire.PiB = [][]string{
			{bn.Bs.X.A0.String(), bn.Bs.X.A1.String()},
			{bn.Bs.Y.A0.String(), bn.Bs.Y.A1.String()},
		}
		wire.PiC = []string{bn.Krs.X.String(), bn.Krs.Y.String()}
	}

	return wire, nil
}

// Verify checks the raw serialized proof against the verifying key and the
// public commitment carried in the proof's public signals.
func (p *GnarkProvider) Verify(ctx context.Context, proof *capsule.Proof, verificationKey string) (bool, error) {
	if proof == nil || proof.Raw == "" {
		return false, fmt.Errorf("%w: no raw proof material", common.ErrorProofVerification)
	}
	if len(proof.PublicSignals) == 0 {
		return false, fmt.Errorf("%w: no public signals", common.ErrorProofVerification)
	}

	rawProof, err := hex.DecodeString(proof.Raw)
	if err != nil {
		return false, fmt.Errorf("%w: malformed proof encoding: %v", common.ErrorProofVerification, err)
	}
	rawVK, err := hex.DecodeString(verificationKey)
	if err != nil {
		return false, fmt.Errorf("%w: malformed verification key: %v", common.ErrorProofVerification, err)
	}

	gproof := groth16.NewProof(p.curveID)
	if _, err := gproof.ReadFrom(bytes.NewReader(rawProof)); err != nil {
		return false, fmt.Errorf("%w: failed to deserialize proof: %v", common.ErrorProofVerification, err)
	}

	vk := groth16.NewVerifyingKey(p.curveID)
	if _, err := vk.ReadFrom(bytes.NewReader(rawVK)); err != nil {
		return false, fmt.Errorf("%w: failed to deserialize verifying key: %v", common.ErrorProofVerification, err)
	}

	c, ok := new(big.Int).SetString(proof.PublicSignals[0], 10)
	if !ok {
		return false, fmt.Errorf("%w: malformed public signal", common.ErrorProofVerification)
	}

	assignment := &DisclosureCircuit{Commitment: c}
	publicWitness, err := frontend.NewWitness(assignment, p.curveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrorProofVerification, err)
	}

	if err := groth16.Verify(gproof, vk, publicWitness); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrorProofVerification, err)
	}
	return true, nil
}
