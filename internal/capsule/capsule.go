package capsule

import (
	"encoding/json"
	"fmt"

	"github.com/veilcam/veilcam/internal/common"
)

// Proof is the opaque artifact produced by the proving library. The core
// never inspects it beyond structural presence of the three components and
// the protocol/curve tags. The shape mirrors the snarkjs layout; Raw carries
// the serialized native proof used for re-verification.
type Proof struct {
	PiA      []string   `json:"pi_a"`
	PiB      [][]string `json:"pi_b"`
	PiC      []string   `json:"pi_c"`
	Protocol string     `json:"protocol"`
	Curve    string     `json:"curve"`

	Raw           string   `json:"raw,omitempty"`
	PublicSignals []string `json:"public_signals,omitempty"`
}

// structurallyComplete reports whether the three structural components are
// present and non-empty.
func (p *Proof) structurallyComplete() bool {
	return p != nil && len(p.PiA) > 0 && len(p.PiB) > 0 && len(p.PiC) > 0
}

// Meta is the non-claim metadata carried by every capsule.
type Meta struct {
	ProofScheme     string `json:"proof_scheme"`
	CircuitVersion  string `json:"circuit_version"`
	ImageHash       string `json:"image_hash"`
	VerificationKey string `json:"verification_key"`
	ImageCID        string `json:"image_cid,omitempty"`
	CapsuleCID      string `json:"capsule_cid,omitempty"`

	// CreatedAt is the generation time in milliseconds since the epoch.
	CreatedAt int64 `json:"created_at"`
}

// Capsule is the sole externally shareable artifact. public_claims may be
// replaced in place by the revision protocol; capsule_id and proof never
// change after creation.
type Capsule struct {
	ID           string            `json:"capsule_id"`
	PublicClaims map[string]string `json:"public_claims"`
	Proof        *Proof            `json:"proof"`
	Metadata     Meta              `json:"metadata"`
}

// Claims returns the tagged form of the public claims.
func (c *Capsule) Claims() []Claim {
	return ClaimsFromWire(c.PublicClaims)
}

// Validate checks structural completeness. Any violation wraps
// common.ErrorInvalidCapsule with a reason.
func (c *Capsule) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing capsule_id", common.ErrorInvalidCapsule)
	}
	if c.PublicClaims == nil {
		return fmt.Errorf("%w: missing public_claims", common.ErrorInvalidCapsule)
	}
	if !c.Proof.structurallyComplete() {
		return fmt.Errorf("%w: proof missing or structurally incomplete", common.ErrorInvalidCapsule)
	}
	if c.Metadata.VerificationKey == "" {
		return fmt.Errorf("%w: missing metadata.verification_key", common.ErrorInvalidCapsule)
	}
	if c.Metadata.ProofScheme == "" {
		return fmt.Errorf("%w: missing metadata.proof_scheme", common.ErrorInvalidCapsule)
	}
	return nil
}

// Marshal renders the wire JSON.
func (c *Capsule) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal parses wire JSON without validating; callers decide whether to
// run the structural gate.
func Unmarshal(data []byte) (*Capsule, error) {
	var c Capsule
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidCapsule, err)
	}
	return &c, nil
}

// Vault is the private, local-only counterpart of a capsule: every committed
// field's commitment, salt and original value, keyed by the shared capsule id.
// A capsule whose vault is gone can never have hidden claims revealed again.
type Vault struct {
	CapsuleID      string           `json:"capsule_id"`
	Commitments    map[Field]string `json:"commitments"`
	Salts          map[Field]string `json:"salts"`
	OriginalValues map[Field]string `json:"original_values"`
}
