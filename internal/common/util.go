package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand.
// A failing system random source leaves the process unable to produce salts
// or keys, so it panics instead of returning an error.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites b with zeros. It is used to drop plaintext
// passwords from memory once they have been sent. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
