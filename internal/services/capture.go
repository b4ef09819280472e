package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/castore"
	"github.com/veilcam/veilcam/internal/collection"
	"github.com/veilcam/veilcam/internal/commitment"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/randx"
	"github.com/veilcam/veilcam/internal/zkbind"
)

// CaptureService runs the full capture flow: prove the image-hash
// commitment, assemble capsule and vault, store the capsule in the local
// collection and optionally push the media to content-addressed storage.
type CaptureService struct {
	prover     zkbind.Provider
	assembler  *AssemblerService
	collection collection.Repository
	store      castore.Store
	logger     logging.Logger
}

// NewCaptureService returns a new CaptureService. store may be nil, in which
// case no upload is attempted.
func NewCaptureService(prover zkbind.Provider, assembler *AssemblerService,
	coll collection.Repository, store castore.Store, logger logging.Logger) *CaptureService {
	return &CaptureService{
		prover:     prover,
		assembler:  assembler,
		collection: coll,
		store:      store,
		logger:     logger,
	}
}

// Capture creates a capsule from one capture. Proof generation failure aborts
// before anything is persisted. An upload failure is logged and skipped; the
// capsule is created without a CID.
func (s *CaptureService) Capture(ctx context.Context, media []byte, meta *capsule.Metadata, settings *capsule.Settings) (*capsule.Capsule, error) {
	if s.store != nil && len(media) > 0 {
		cid, err := s.store.Upload(ctx, media)
		if err != nil {
			s.logger.Warn(ctx, "media upload failed, continuing without cid", "error", err.Error())
		} else {
			meta.CID = cid
		}
	}

	imageSalt, err := randx.MakeSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate image salt: %w", err)
	}

	proof, vk, err := s.prove(ctx, meta.PhotoHash, imageSalt)
	if err != nil {
		return nil, err
	}

	c, _, err := s.assembler.Assemble(ctx, meta, settings, proof, vk, imageSalt)
	if err != nil {
		return nil, err
	}

	if err := s.collection.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to store capsule: %w", err)
	}
	return c, nil
}

// prove generates the disclosure proof binding the image hash to its salted
// commitment. The commitment in the proof's public signals is exactly the
// image_hash commitment the assembler will place in the vault.
func (s *CaptureService) prove(ctx context.Context, photoHash, salt string) (*capsule.Proof, string, error) {
	vk, err := s.prover.VerificationKey(ctx)
	if err != nil {
		return nil, "", err
	}

	com, ok := new(big.Int).SetString(commitment.Commit(photoHash, salt), 10)
	if !ok {
		return nil, "", fmt.Errorf("malformed commitment for %q", photoHash)
	}

	dv := commitment.FieldElement(photoHash)
	sv := commitment.FieldElement(salt)
	in := zkbind.Inputs{
		Digest:     new(big.Int),
		Salt:       new(big.Int),
		Commitment: com,
	}
	dv.BigInt(in.Digest)
	sv.BigInt(in.Salt)

	proof, err := s.prover.Prove(ctx, in)
	if err != nil {
		return nil, "", err
	}
	return proof, vk, nil
}
