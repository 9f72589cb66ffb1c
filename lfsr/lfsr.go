// Implements a bit-serial CRC using a linear feedback shift register.
package lfsr

import (
	"fmt"
	"strconv"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/crc"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/pkg/errors"
)

// A Register is m bits wide, m being the degree of the generator polynomial.
// The polynomial's leading term is implicit in the feedback.
type Register struct {
	Width int
	Value uint64

	taps uint64
	mask uint64
}

func NewRegister(p crc.Polynomial) (reg Register) {
	reg.Width = p.Degree()
	reg.taps = p.Low()
	reg.mask = bitfield.Mask(reg.Width)
	return
}

// A Step records a single clock of the register.
type Step struct {
	Index    int
	In       uint
	Feedback uint // MSB of the register before shifting.
	Before   uint64
	After    uint64
	Width    int
	Flush    bool
}

func (s Step) String() string {
	return fmt.Sprintf("{Index:%d In:%d Feedback:%d Before:%s After:%s}",
		s.Index, s.In, s.Feedback,
		bitfield.MustRender(s.Before, s.Width), bitfield.MustRender(s.After, s.Width),
	)
}

func (s Step) Record() (r []string) {
	r = append(r, strconv.Itoa(s.Index))
	r = append(r, strconv.FormatUint(uint64(s.In), 10))
	r = append(r, strconv.FormatUint(uint64(s.Feedback), 10))
	r = append(r, bitfield.MustRender(s.Before, s.Width))
	r = append(r, bitfield.MustRender(s.After, s.Width))
	r = append(r, strconv.FormatBool(s.Flush))
	return r
}

// Clock shifts bit into the register. If the bit shifted out was set the
// register is xored with the generator polynomial.
func (reg *Register) Clock(bit uint) (step Step) {
	step.In = bit & 1
	step.Before = reg.Value
	step.Width = reg.Width

	// A degree 0 polynomial has no register at all.
	if reg.Width <= 0 {
		return
	}

	step.Feedback = uint(reg.Value >> uint(reg.Width-1) & 1)
	reg.Value = (reg.Value<<1 | uint64(step.In)) & reg.mask
	if step.Feedback == 1 {
		reg.Value ^= reg.taps
	}

	step.After = reg.Value
	return
}

// Run clocks every bit of msg through a fresh register, MSB first, followed
// by m zeros. The final register value is the fcs.
func Run(msg bitfield.BitField, p crc.Polynomial) (bitfield.BitField, error) {
	fcs, _, err := run(msg, p, false)
	return fcs, err
}

// Trace is like Run but also returns each clock of the register.
func Trace(msg bitfield.BitField, p crc.Polynomial) (bitfield.BitField, []Step, error) {
	return run(msg, p, true)
}

func run(msg bitfield.BitField, p crc.Polynomial, trace bool) (bitfield.BitField, []Step, error) {
	if p.Value == 0 {
		return bitfield.BitField{}, nil, errors.Wrapf(gf2.ErrZeroDivisor, "lfsr %s", msg)
	}
	if err := msg.Validate(); err != nil {
		return bitfield.BitField{}, nil, errors.Wrap(err, "message")
	}

	reg := NewRegister(p)

	var steps []Step
	if trace {
		steps = make([]Step, 0, msg.Width+reg.Width)
	}

	for idx := 0; idx < msg.Width+reg.Width; idx++ {
		var bit uint
		flush := idx >= msg.Width
		if !flush {
			bit = msg.Bit(msg.Width - 1 - idx)
		}

		step := reg.Clock(bit)
		if trace {
			step.Index = idx
			step.Flush = flush
			steps = append(steps, step)
		}
	}

	return bitfield.BitField{Value: reg.Value, Width: reg.Width}, steps, nil
}
