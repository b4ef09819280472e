package commitment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_Deterministic(t *testing.T) {
	c1 := Commit("France", "1234567")
	c2 := Commit("France", "1234567")
	assert.Equal(t, c1, c2)
	assert.NotEmpty(t, c1)
}

func TestCommit_SaltSeparatesEqualValues(t *testing.T) {
	// two fields holding the same underlying value must not be linkable
	c1 := Commit("France", "1234567")
	c2 := Commit("France", "7654321")
	assert.NotEqual(t, c1, c2)
}

func TestCommit_ValueChangesOutput(t *testing.T) {
	assert.NotEqual(t, Commit("France", "1234567"), Commit("Germany", "1234567"))
}

func TestCommit_ConcatenationIsNotAmbiguous(t *testing.T) {
	// value/salt boundary must matter: "ab"+"c" vs "a"+"bc"
	assert.NotEqual(t, Commit("ab", "c"), Commit("a", "bc"))
}

func TestDeriveCapsuleID(t *testing.T) {
	id1, err := DeriveCapsuleID("abc123", 1700000000000)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id1, "cap_"))
	assert.Len(t, id1, len("cap_")+16)

	// unique per generation event even for identical inputs
	id2, err := DeriveCapsuleID("abc123", 1700000000000)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestFieldElement_Deterministic(t *testing.T) {
	a := FieldElement("value")
	b := FieldElement("value")
	assert.True(t, a.Equal(&b))
}
