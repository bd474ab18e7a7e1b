package match3

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// IntNSource is the only thing the board needs from a random generator.
// *rand.Rand satisfies it; tests plug in fixed sequences.
type IntNSource interface {
	IntN(n int) int
}

// NewRand returns a ChaCha8-backed generator. A zero seed draws one from
// crypto/rand.
func NewRand(seed uint64) *rand.Rand {
	var key [32]byte
	if seed == 0 {
		_, _ = crand.Read(key[:])
	} else {
		binary.LittleEndian.PutUint64(key[:], seed)
	}
	return rand.New(rand.NewChaCha8(key))
}
