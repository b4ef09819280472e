package zkbind

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// DisclosureCircuit proves knowledge of the image digest and salt behind the
// public commitment carried in a capsule:
//
//	MiMC(digest, salt) == commitment
//
// The native commitment builder evaluates the same hash over the same field
// elements, so commitments in public claims are provable here directly.
type DisclosureCircuit struct {
	Digest     frontend.Variable
	Salt       frontend.Variable
	Commitment frontend.Variable `gnark:",public"`
}

// Define declares the circuit's constraints.
func (c *DisclosureCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Digest, c.Salt)
	api.AssertIsEqual(c.Commitment, h.Sum())
	return nil
}
