// Implements fixed-width unsigned bit patterns.
package bitfield

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Registers, messages and codewords are carried in a uint64.
	MaxWidth = 64

	// A degree 63 polynomial occupies all 64 bits.
	MaxDegree = MaxWidth - 1

	Prefix = "0b"
)

var (
	ErrInvalidWidth  = errors.New("invalid width")
	ErrWidthMismatch = errors.New("value does not fit in width")
)

// A BitField is a value with an explicitly declared width. The width may
// exceed the value's bit length when the pattern has leading zeros.
type BitField struct {
	Value uint64
	Width int
}

// New validates value against width. Values wider than their declared width
// are rejected rather than truncated.
func New(value uint64, width int) (BitField, error) {
	if width < 0 || width > MaxWidth {
		return BitField{}, errors.Wrapf(ErrInvalidWidth, "width %d not in [0, %d]", width, MaxWidth)
	}
	if Len(value) > width {
		return BitField{}, errors.Wrapf(ErrWidthMismatch, "0x%X needs %d bits, have %d", value, Len(value), width)
	}
	return BitField{value, width}, nil
}

// Of returns a bitfield exactly as wide as value.
func Of(value uint64) BitField {
	return BitField{value, Len(value)}
}

// Len returns the number of bits needed to represent x, 0 for x == 0.
func Len(x uint64) int {
	return bits.Len64(x)
}

// Mask returns a value with the low width bits set.
func Mask(width int) uint64 {
	if width <= 0 {
		return 0
	}
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Render formats x as exactly width binary digits following the 0b prefix.
// Only the low width bits of x are rendered.
func Render(x uint64, width int) (string, error) {
	if width > MaxWidth {
		return "", errors.Wrapf(ErrInvalidWidth, "cannot render %d bits", width)
	}
	if width <= 0 {
		return Prefix + "0", nil
	}

	var b strings.Builder
	b.Grow(len(Prefix) + width)
	b.WriteString(Prefix)
	for i := width - 1; i >= 0; i-- {
		b.WriteByte('0' + byte(x>>uint(i)&1))
	}
	return b.String(), nil
}

// MustRender is like Render but panics on an invalid width.
func MustRender(x uint64, width int) string {
	s, err := Render(x, width)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse reads a literal in any radix accepted by strconv. A binary literal's
// width is its digit count, so leading zeros are preserved; other radices
// infer the minimal width.
func Parse(s string) (BitField, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")

	value, err := strconv.ParseUint(s, 0, 64)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return BitField{}, errors.Wrapf(ErrInvalidWidth, "parse %q: wider than %d bits", s, MaxWidth)
	}
	if err != nil {
		return BitField{}, errors.Wrapf(err, "parse %q", s)
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, Prefix) {
		return New(value, len(s)-len(Prefix))
	}
	return Of(value), nil
}

// Validate applies the same checks as New to an existing field.
func (bf BitField) Validate() error {
	_, err := New(bf.Value, bf.Width)
	return err
}

// Bit returns bit i counting from the LSB.
func (bf BitField) Bit(i int) uint {
	if i < 0 || i >= MaxWidth {
		return 0
	}
	return uint(bf.Value >> uint(i) & 1)
}

// Len returns the bit length of the value, ignoring declared width.
func (bf BitField) Len() int {
	return Len(bf.Value)
}

// Shl appends n zero bits.
func (bf BitField) Shl(n int) (BitField, error) {
	if n < 0 || bf.Width+n > MaxWidth {
		return BitField{}, errors.Wrapf(ErrInvalidWidth, "%d+%d bits exceeds %d", bf.Width, n, MaxWidth)
	}
	return BitField{bf.Value << uint(n), bf.Width + n}, nil
}

// Xor combines two fields, the result is as wide as the wider operand.
func (bf BitField) Xor(other BitField) BitField {
	width := bf.Width
	if other.Width > width {
		width = other.Width
	}
	return BitField{bf.Value ^ other.Value, width}
}

func (bf BitField) MarshalText() ([]byte, error) {
	s, err := Render(bf.Value, bf.Width)
	return []byte(s), err
}

func (bf *BitField) UnmarshalText(text []byte) (err error) {
	*bf, err = Parse(string(text))
	return err
}

func (bf BitField) String() string {
	s, err := Render(bf.Value, bf.Width)
	if err != nil {
		return fmt.Sprintf("%%!(%s)", err)
	}
	return s
}
