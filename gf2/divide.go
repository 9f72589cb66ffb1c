// Implements MSB-first binary long division over GF(2).
package gf2

import (
	"fmt"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/pkg/errors"
)

var ErrZeroDivisor = errors.New("divisor is zero")

// Result of a division. The remainder is always as wide as the divisor's
// degree and the quotient has one bit per iteration of the division.
type Result struct {
	Quotient  bitfield.BitField
	Remainder bitfield.BitField
}

func (r Result) String() string {
	return fmt.Sprintf("{Quotient:%s Remainder:%s}", r.Quotient, r.Remainder)
}

// A Step records a single iteration of the division for display.
type Step struct {
	// Column is the horizontal offset of the partial remainder under the
	// dividend and Pending is the number of dividend bits not yet brought
	// down.
	Column  int
	Pending int

	Partial uint64 // Register before xor.
	Row     uint64 // Divisor if it was subtracted, otherwise 0.
	Next    uint64 // Register after xor and bringing down the next bit.
	Bit     uint   // Quotient bit.
}

// Divide returns the quotient and remainder of dividend divided by divisor.
func Divide(dividend, divisor bitfield.BitField) (Result, error) {
	res, _, err := divide(dividend, divisor, false)
	return res, err
}

// DivideTrace is like Divide but also returns each step of the division.
func DivideTrace(dividend, divisor bitfield.BitField) (Result, []Step, error) {
	return divide(dividend, divisor, true)
}

func divide(dividend, divisor bitfield.BitField, trace bool) (res Result, steps []Step, err error) {
	if divisor.Value == 0 {
		return res, nil, errors.Wrapf(ErrZeroDivisor, "divide %s", dividend)
	}
	if err := dividend.Validate(); err != nil {
		return res, nil, errors.Wrap(err, "dividend")
	}

	k := dividend.Width
	r := divisor.Len()
	m := r - 1

	res.Remainder.Width = m

	// Nothing to shift, the dividend is already the remainder.
	if k < r {
		res.Remainder.Value = dividend.Value
		return res, nil, nil
	}

	aux := k - r
	reg := dividend.Value >> uint(aux)

	var quo uint64
	if trace {
		steps = make([]Step, 0, aux+1)
	}

	for aux >= 0 {
		step := Step{Column: k - r - aux, Pending: aux, Partial: reg}

		// Compare lengths, not values: the divisor applies only when the
		// register's leading bit lines up with the divisor's.
		quo <<= 1
		if bitfield.Len(reg) == r {
			quo |= 1
			reg ^= divisor.Value
			step.Row = divisor.Value
			step.Bit = 1
		}

		aux--
		if aux >= 0 {
			reg = reg<<1 | dividend.Value>>uint(aux)&1
		}

		if trace {
			step.Next = reg
			steps = append(steps, step)
		}
	}

	res.Quotient = bitfield.BitField{Value: quo, Width: k - m}
	res.Remainder.Value = reg

	return res, steps, nil
}
