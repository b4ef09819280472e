package common

// ProofScheme is the proving scheme used for capsule proofs.
const ProofScheme = "groth16"

// ProofCurve is the elliptic curve tag carried in the proof wire format.
const ProofCurve = "bn254"

// CircuitVersion identifies the disclosure circuit revision a capsule was
// generated against. Verifiers reject capsules from unknown future versions.
const CircuitVersion = "1.0.0"
