// Package randx provides the random material the capsule pipeline depends on:
// per-field salts and random hex identifiers. All randomness comes from
// crypto/rand; a failing random source is fatal to the calling flow.
package randx

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// saltLengths are the permitted salt lengths. One is chosen uniformly per salt.
var saltLengths = []int{6, 7, 8, 9}

// MakeSalt generates a fresh random digit string of length 6–9.
//
// A salt must be generated independently for every field of every capsule and
// must never be reused; it governs commitment unlinkability. The leading digit
// may be zero, salts are opaque strings rather than numbers.
func MakeSalt() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(saltLengths))))
	if err != nil {
		return "", err
	}
	length := saltLengths[n.Int64()]

	digits := make([]byte, length)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate, so the
// final string length is twice the size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakeRandByteArray returns size random bytes. It panics if the random source
// fails, which matches the fatal-error contract of the generation pipeline.
func MakeRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
