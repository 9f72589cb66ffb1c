package gen

import (
	"math/rand"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/crc"
)

// NewRandPoly returns a random polynomial of the given degree. The constant
// term is always present, as it is for every practical generator.
func NewRandPoly(rand *rand.Rand, degree int) crc.Polynomial {
	value := uint64(1)<<uint(degree) | rand.Uint64()&bitfield.Mask(degree) | 1
	return crc.Polynomial{Name: "rand", Value: value}
}

// NewRandMessage returns a random message of random width, short enough that
// a degree m fcs can still be appended to it.
func NewRandMessage(rand *rand.Rand, degree int) bitfield.BitField {
	width := rand.Intn(bitfield.MaxWidth-degree) + 1
	return bitfield.BitField{Value: rand.Uint64() & bitfield.Mask(width), Width: width}
}

// UnpackBits returns one bit per byte, most significant bit first.
func UnpackBits(bf bitfield.BitField) []byte {
	bits := make([]byte, bf.Width)
	for idx := range bits {
		bits[idx] = byte(bf.Bit(bf.Width - 1 - idx))
	}
	return bits
}

// FlipBits returns a copy of bf with the bits at the given positions, counted
// from the LSB, inverted.
func FlipBits(bf bitfield.BitField, positions ...int) bitfield.BitField {
	for _, pos := range positions {
		bf.Value ^= 1 << uint(pos)
	}
	return bf
}
