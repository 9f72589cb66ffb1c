// Implements systematic CRC encoding over GF(2).
package crc

import (
	"fmt"
	"strings"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/pkg/errors"
)

// A Polynomial is a generator polynomial. Only the unreflected, zero initial
// value, MSB-first variant is supported.
type Polynomial struct {
	Name  string
	Value uint64
}

func NewPolynomial(name string, value uint64) (p Polynomial, err error) {
	if value == 0 {
		return p, errors.Wrapf(gf2.ErrZeroDivisor, "polynomial %q", name)
	}

	p.Name = name
	p.Value = value

	return
}

// Width returns the number of bits in the polynomial, r.
func (p Polynomial) Width() int {
	return bitfield.Len(p.Value)
}

// Degree returns m, the width of the remainder and of the LFSR register.
func (p Polynomial) Degree() int {
	return p.Width() - 1
}

// Low returns the coefficients below the leading term.
func (p Polynomial) Low() uint64 {
	return p.Value & bitfield.Mask(p.Degree())
}

func (p Polynomial) Field() bitfield.BitField {
	return bitfield.Of(p.Value)
}

// Terms renders the polynomial in x, e.g. x^6 + x^4 + x^3 + x + 1.
func (p Polynomial) Terms() string {
	if p.Value == 0 {
		return "0"
	}

	var terms []string
	for deg := p.Degree(); deg >= 0; deg-- {
		if p.Value>>uint(deg)&1 == 0 {
			continue
		}
		switch deg {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, fmt.Sprintf("x^%d", deg))
		}
	}
	return strings.Join(terms, " + ")
}

func (p Polynomial) String() string {
	return fmt.Sprintf("{Name:%s Poly:0x%X Degree:%d}", p.Name, p.Value, p.Degree())
}

// A Transmission is a message with its frame check sequence appended.
type Transmission struct {
	Message  bitfield.BitField
	Shifted  bitfield.BitField
	Quotient bitfield.BitField
	FCS      bitfield.BitField
	Codeword bitfield.BitField
}

func (t Transmission) String() string {
	return fmt.Sprintf("{Message:%s FCS:%s Codeword:%s}", t.Message, t.FCS, t.Codeword)
}

// Encode appends the remainder of msg·x^m divided by p to msg.
func Encode(msg bitfield.BitField, p Polynomial) (Transmission, error) {
	t, _, err := encode(msg, p, false)
	return t, err
}

// EncodeTrace is like Encode but also returns the steps of the division.
func EncodeTrace(msg bitfield.BitField, p Polynomial) (Transmission, []gf2.Step, error) {
	return encode(msg, p, true)
}

func encode(msg bitfield.BitField, p Polynomial, trace bool) (t Transmission, steps []gf2.Step, err error) {
	if p.Value == 0 {
		return t, nil, errors.Wrapf(gf2.ErrZeroDivisor, "encode %s", msg)
	}

	if err := msg.Validate(); err != nil {
		return t, nil, errors.Wrap(err, "message")
	}

	t.Message = msg
	t.Shifted, err = msg.Shl(p.Degree())
	if err != nil {
		return t, nil, errors.Wrapf(err, "append %d bit fcs", p.Degree())
	}

	var res gf2.Result
	if trace {
		res, steps, err = gf2.DivideTrace(t.Shifted, p.Field())
	} else {
		res, err = gf2.Divide(t.Shifted, p.Field())
	}
	if err != nil {
		return t, nil, err
	}

	t.Quotient = res.Quotient
	t.FCS = res.Remainder
	t.Codeword = bitfield.BitField{
		Value: t.Shifted.Value ^ res.Remainder.Value,
		Width: t.Shifted.Width,
	}

	return t, steps, nil
}

// Check returns the remainder of a received codeword, zero if no error was
// detected.
func Check(codeword bitfield.BitField, p Polynomial) (bitfield.BitField, error) {
	res, err := gf2.Divide(codeword, p.Field())
	if err != nil {
		return bitfield.BitField{}, err
	}
	return res.Remainder, nil
}

// CheckTrace is like Check but also returns the steps of the division.
func CheckTrace(codeword bitfield.BitField, p Polynomial) (gf2.Result, []gf2.Step, error) {
	return gf2.DivideTrace(codeword, p.Field())
}
