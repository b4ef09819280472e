package zkbind

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/commitment"
	"github.com/veilcam/veilcam/internal/common"
)

func inputsFor(t *testing.T, value, salt string) Inputs {
	t.Helper()

	dv := commitment.FieldElement(value)
	sv := commitment.FieldElement(salt)

	c, ok := new(big.Int).SetString(commitment.Commit(value, salt), 10)
	require.True(t, ok)

	return Inputs{
		Digest:     dv.BigInt(new(big.Int)),
		Salt:       sv.BigInt(new(big.Int)),
		Commitment: c,
	}
}

func TestGnarkProvider_ProveVerifyRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	ctx := context.Background()
	p := InitGnarkProvider()

	vk, err := p.VerificationKey(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, vk)

	proof, err := p.Prove(ctx, inputsFor(t, "abc123", "1234567"))
	require.NoError(t, err)

	// structural components must be present for the parser gate
	assert.NotEmpty(t, proof.PiA)
	assert.NotEmpty(t, proof.PiB)
	assert.NotEmpty(t, proof.PiC)
	assert.Equal(t, common.ProofScheme, proof.Protocol)
	assert.Equal(t, common.ProofCurve, proof.Curve)
	require.Len(t, proof.PublicSignals, 1)

	ok, err := p.Verify(ctx, proof, vk)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGnarkProvider_VerifyRejectsWrongCommitment(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	ctx := context.Background()
	p := InitGnarkProvider()

	vk, err := p.VerificationKey(ctx)
	require.NoError(t, err)

	proof, err := p.Prove(ctx, inputsFor(t, "abc123", "1234567"))
	require.NoError(t, err)

	// swap the public signal for a commitment the proof does not cover
	proof.PublicSignals = []string{commitment.Commit("abc123", "7654321")}

	ok, err := p.Verify(ctx, proof, vk)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrorProofVerification)
}

func TestGnarkProvider_VerifyRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	p := InitGnarkProvider()

	ok, err := p.Verify(ctx, nil, "00")
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrorProofVerification)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("zokrates")
	assert.Error(t, err)

	p, err := New(ProviderGnark)
	require.NoError(t, err)
	assert.NotNil(t, p)
}
