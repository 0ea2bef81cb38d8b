package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"

	"fortio.org/safecast"
)

// Key identifies one evaluation by the exact bit patterns of its inputs.
// Two calls share a key only if every q, β and d value is bit-identical.
type Key [sha256.Size]byte

// KeyOf hashes q, beta and d. Each array is prefixed with its length so that
// shifting a value from one array to the next changes the key.
func KeyOf(q []float64, beta []complex128, d []float64) (Key, error) {
	h := sha256.New()
	if err := writeLen(h, len(q)); err != nil {
		return Key{}, err
	}
	for _, v := range q {
		writeFloat(h, v)
	}
	if err := writeLen(h, len(beta)); err != nil {
		return Key{}, err
	}
	for _, v := range beta {
		writeFloat(h, real(v))
		writeFloat(h, imag(v))
	}
	if err := writeLen(h, len(d)); err != nil {
		return Key{}, err
	}
	for _, v := range d {
		writeFloat(h, v)
	}

	var k Key
	h.Sum(k[:0])
	return k, nil
}

func writeLen(h hash.Hash, n int) error {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return fmt.Errorf("cache: array length %d: %w", n, err)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	h.Write(buf[:])
	return nil
}

func writeFloat(h hash.Hash, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	h.Write(buf[:])
}
