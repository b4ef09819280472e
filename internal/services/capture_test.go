package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/zkbind"
)

type fakeProver struct {
	proveErr   error
	lastInputs zkbind.Inputs
}

func (f *fakeProver) VerificationKey(ctx context.Context) (string, error) {
	return "fake-vk", nil
}

func (f *fakeProver) Prove(ctx context.Context, in zkbind.Inputs) (*capsule.Proof, error) {
	if f.proveErr != nil {
		return nil, f.proveErr
	}
	f.lastInputs = in
	return &capsule.Proof{
		PiA:           []string{"1", "2"},
		PiB:           [][]string{{"3", "4"}, {"5", "6"}},
		PiC:           []string{"7", "8"},
		Protocol:      common.ProofScheme,
		Curve:         common.ProofCurve,
		PublicSignals: []string{in.Commitment.String()},
	}, nil
}

func (f *fakeProver) Verify(ctx context.Context, proof *capsule.Proof, vk string) (bool, error) {
	return true, nil
}

type fakeStore struct {
	cid string
	err error
}

func (f *fakeStore) Upload(ctx context.Context, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.cid, nil
}

func (f *fakeStore) Resolve(cid string) string { return "https://gateway/" + cid }

func TestCapture_EndToEnd(t *testing.T) {
	ctx := context.Background()
	vs := setupVaultService(t)
	coll := setupCollection(t)
	prover := &fakeProver{}

	svc := NewCaptureService(prover, NewAssemblerService(vs, discardLogger()), coll,
		&fakeStore{cid: "QmMedia"}, discardLogger())

	c, err := svc.Capture(ctx, []byte("jpeg bytes"), parisMetadata(), &capsule.Settings{
		RevealLocation: true,
		LocationLevel:  capsule.LocationLevelCountry,
	})
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "QmMedia", c.Metadata.ImageCID)
	assert.Equal(t, "fake-vk", c.Metadata.VerificationKey)

	// the proof's public commitment is the vault's image_hash commitment
	v, err := vs.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, c.Proof.PublicSignals, 1)
	assert.Equal(t, v.Commitments[capsule.FieldImageHash], c.Proof.PublicSignals[0])

	// image_cid joins the snapshot when the upload succeeded
	assert.Equal(t, "QmMedia", v.OriginalValues[capsule.FieldImageCID])
	require.Len(t, v.OriginalValues, 13)

	stored, err := coll.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.PublicClaims, stored.PublicClaims)
}

func TestCapture_UploadFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	svc := NewCaptureService(&fakeProver{}, NewAssemblerService(setupVaultService(t), discardLogger()),
		setupCollection(t), &fakeStore{err: errors.New("gateway down")}, discardLogger())

	c, err := svc.Capture(ctx, []byte("jpeg bytes"), parisMetadata(), &capsule.Settings{})
	require.NoError(t, err)
	assert.Empty(t, c.Metadata.ImageCID)
}

func TestCapture_NoStoreConfigured(t *testing.T) {
	ctx := context.Background()
	svc := NewCaptureService(&fakeProver{}, NewAssemblerService(setupVaultService(t), discardLogger()),
		setupCollection(t), nil, discardLogger())

	c, err := svc.Capture(ctx, nil, parisMetadata(), &capsule.Settings{})
	require.NoError(t, err)
	assert.Empty(t, c.Metadata.ImageCID)
}

func TestCapture_ProofFailureAbortsBeforePersistence(t *testing.T) {
	ctx := context.Background()
	vs := setupVaultService(t)
	coll := setupCollection(t)

	svc := NewCaptureService(&fakeProver{proveErr: common.ErrorProofGeneration},
		NewAssemblerService(vs, discardLogger()), coll, nil, discardLogger())

	_, err := svc.Capture(ctx, nil, parisMetadata(), &capsule.Settings{})
	assert.ErrorIs(t, err, common.ErrorProofGeneration)

	all, err := coll.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCapture_ProveInputsAreFieldElements(t *testing.T) {
	ctx := context.Background()
	prover := &fakeProver{}
	svc := NewCaptureService(prover, NewAssemblerService(setupVaultService(t), discardLogger()),
		setupCollection(t), nil, discardLogger())

	_, err := svc.Capture(ctx, nil, parisMetadata(), &capsule.Settings{})
	require.NoError(t, err)

	require.NotNil(t, prover.lastInputs.Digest)
	require.NotNil(t, prover.lastInputs.Salt)
	require.NotNil(t, prover.lastInputs.Commitment)
	assert.NotEqual(t, big.NewInt(0), prover.lastInputs.Digest)
}
