package verifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
)

func validCapsule() *capsule.Capsule {
	return &capsule.Capsule{
		ID:           "cap_0011223344556677",
		PublicClaims: map[string]string{"location_country": "France"},
		Proof: &capsule.Proof{
			PiA:      []string{"1", "2"},
			PiB:      [][]string{{"3", "4"}, {"5", "6"}},
			PiC:      []string{"7", "8"},
			Protocol: common.ProofScheme,
			Curve:    common.ProofCurve,
		},
		Metadata: capsule.Meta{
			ProofScheme:     common.ProofScheme,
			CircuitVersion:  common.CircuitVersion,
			ImageHash:       "abcd",
			VerificationKey: "deadbeef",
			CreatedAt:       1700000000000,
		},
	}
}

func TestParser_RawJSON(t *testing.T) {
	body, err := validCapsule().Marshal()
	require.NoError(t, err)

	p := NewParser()
	c, err := p.Parse(context.Background(), string(body))
	require.NoError(t, err)
	assert.Equal(t, "cap_0011223344556677", c.ID)
	assert.Equal(t, "France", c.PublicClaims["location_country"])
}

func TestParser_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"missing capsule_id", func(m map[string]any) { delete(m, "capsule_id") }},
		{"missing public_claims", func(m map[string]any) { m["public_claims"] = nil }},
		{"incomplete proof", func(m map[string]any) { m["proof"].(map[string]any)["pi_a"] = []any{} }},
		{"missing verification_key", func(m map[string]any) {
			delete(m["metadata"].(map[string]any), "verification_key")
		}},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := validCapsule().Marshal()
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, json.Unmarshal(body, &m))
			tt.mutate(m)
			mutated, err := json.Marshal(m)
			require.NoError(t, err)

			_, err = p.Parse(context.Background(), string(mutated))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrorInvalidCapsule)

			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestParser_Garbage(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(context.Background(), "this is not json")
	assert.ErrorIs(t, err, common.ErrorInvalidCapsule)
}

func TestParser_URL(t *testing.T) {
	body, err := validCapsule().Marshal()
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/capsule.json":
			_, _ = w.Write(body)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	p := NewParser()

	c, err := p.Parse(context.Background(), srv.URL+"/capsule.json")
	require.NoError(t, err)
	assert.Equal(t, "cap_0011223344556677", c.ID)

	// fetch failure is distinct from an invalid capsule
	_, err = p.Parse(context.Background(), srv.URL+"/broken")
	assert.ErrorIs(t, err, common.ErrorFetch)
	assert.NotErrorIs(t, err, common.ErrorInvalidCapsule)

	_, err = p.Parse(context.Background(), "http://127.0.0.1:1/capsule.json")
	assert.ErrorIs(t, err, common.ErrorFetch)
}
