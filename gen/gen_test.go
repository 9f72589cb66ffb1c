package gen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/stretchr/testify/require"
)

func TestNewRandPoly(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for degree := 0; degree <= bitfield.MaxDegree; degree++ {
		p := NewRandPoly(r, degree)
		require.Equal(t, degree, p.Degree())
		require.Equal(t, uint64(1), p.Value&1)
	}
}

func TestNewRandMessage(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for trial := 0; trial < 512; trial++ {
		degree := r.Intn(bitfield.MaxDegree + 1)
		msg := NewRandMessage(r, degree)
		require.NoError(t, msg.Validate())
		require.True(t, msg.Width+degree <= bitfield.MaxWidth, "width=%d, degree=%d", msg.Width, degree)
	}
}

func TestUnpackBits(t *testing.T) {
	require.Equal(t, []byte{0, 1, 0, 1}, UnpackBits(bitfield.BitField{Value: 0b101, Width: 4}))
	require.Empty(t, UnpackBits(bitfield.BitField{}))
}

func TestFlipBits(t *testing.T) {
	bf := bitfield.BitField{Value: 0b1001, Width: 4}
	require.Equal(t, bitfield.BitField{Value: 0b0011, Width: 4}, FlipBits(bf, 3, 1))
	require.Equal(t, bf, FlipBits(bf))
}
