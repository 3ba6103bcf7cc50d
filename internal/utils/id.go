package utils

import (
	"crypto/rand"
	"math/big"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandString returns n random base36 characters from a CSPRNG. Used for
// record ids, so the entropy has to be good enough that collisions are never
// checked for.
func RandString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		b[i] = idAlphabet[idx.Int64()]
	}
	return string(b)
}

// NewCerpenID generates a fresh story id: a "c" prefix plus nine random
// base36 characters.
func NewCerpenID() string {
	return "c" + RandString(9)
}
