package bitfield

import (
	"encoding/json"
	"testing"
	"testing/quick"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLen(t *testing.T) {
	require.Equal(t, 0, Len(0))
	require.Equal(t, 1, Len(1))
	require.Equal(t, 2, Len(0b11))
	require.Equal(t, 7, Len(0b1011011))
	require.Equal(t, 64, Len(^uint64(0)))
}

func TestMask(t *testing.T) {
	require.Equal(t, uint64(0), Mask(0))
	require.Equal(t, uint64(0), Mask(-3))
	require.Equal(t, uint64(0x3F), Mask(6))
	require.Equal(t, ^uint64(0), Mask(64))
}

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		x     uint64
		width int
		want  string
	}{
		{0, 0, "0b0"},
		{5, -1, "0b0"},
		{0b101, 3, "0b101"},
		{0b101, 6, "0b000101"},
		{0b1101, 2, "0b01"},
		{1 << 63, 64, "0b1" + repeat('0', 63)},
	} {
		s, err := Render(tc.x, tc.width)
		require.NoError(t, err)
		require.Equal(t, tc.want, s, "x=%d, width=%d", tc.x, tc.width)
	}
}

func TestRenderInvalidWidth(t *testing.T) {
	_, err := Render(1, MaxWidth+1)
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))

	require.Panics(t, func() { MustRender(1, 100) })
}

func TestRenderParse(t *testing.T) {
	err := quick.Check(func(x uint64, w uint8) bool {
		width := int(w)%MaxWidth + 1
		s, err := Render(x, width)
		if err != nil {
			return false
		}
		bf, err := Parse(s)
		return err == nil && bf.Width == width && bf.Value == x&Mask(width)
	}, nil)

	if err != nil {
		t.Fatal("Error testing render/parse:", err)
	}
}

func TestParse(t *testing.T) {
	bf, err := Parse("0b0010")
	require.NoError(t, err)
	require.Equal(t, BitField{2, 4}, bf)

	bf, err = Parse("0x5B")
	require.NoError(t, err)
	require.Equal(t, BitField{0x5B, 7}, bf)

	bf, err = Parse("0b1000_1000")
	require.NoError(t, err)
	require.Equal(t, BitField{0x88, 8}, bf)

	bf, err = Parse("11")
	require.NoError(t, err)
	require.Equal(t, BitField{11, 4}, bf)

	_, err = Parse("0b")
	require.Error(t, err)

	_, err = Parse("0b" + repeat('1', 65))
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))

	_, err = Parse("0x1FFFFFFFFFFFFFFFF")
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))

	_, err = Parse("0xZZ")
	require.Error(t, err)
	require.NotEqual(t, ErrInvalidWidth, errors.Cause(err))
}

func TestNew(t *testing.T) {
	bf, err := New(0b100, 3)
	require.NoError(t, err)
	require.Equal(t, "0b100", bf.String())

	bf, err = New(0b100, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, bf.Len())
	assert.Equal(t, "0b00000100", bf.String())

	_, err = New(0b100, 2)
	require.Equal(t, ErrWidthMismatch, errors.Cause(err))

	_, err = New(0, -1)
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))

	_, err = New(0, 65)
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))
}

func TestShl(t *testing.T) {
	bf, err := BitField{0b100, 3}.Shl(1)
	require.NoError(t, err)
	require.Equal(t, BitField{0b1000, 4}, bf)

	_, err = BitField{1, 60}.Shl(5)
	require.Equal(t, ErrInvalidWidth, errors.Cause(err))
}

func TestBitXor(t *testing.T) {
	bf := BitField{0b1010, 4}
	require.Equal(t, uint(1), bf.Bit(3))
	require.Equal(t, uint(0), bf.Bit(2))
	require.Equal(t, uint(0), bf.Bit(64))

	require.Equal(t, BitField{0b1001, 4}, BitField{0b1000, 4}.Xor(BitField{1, 1}))
}

func TestJSON(t *testing.T) {
	buf, err := json.Marshal(BitField{0b101, 8})
	require.NoError(t, err)
	require.Equal(t, `"0b00000101"`, string(buf))

	var bf BitField
	require.NoError(t, json.Unmarshal(buf, &bf))
	require.Equal(t, BitField{0b101, 8}, bf)
}

func repeat(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}
