package lfsr

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/crc"
	"github.com/bemasher/crclfsr/gen"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario(t *testing.T) {
	p, err := crc.NewPolynomial("x+1", 0b11)
	require.NoError(t, err)

	fcs, err := Run(bitfield.BitField{Value: 0b100, Width: 3}, p)
	require.NoError(t, err)
	require.Equal(t, bitfield.BitField{Value: 1, Width: 1}, fcs)
}

func TestNOP(t *testing.T) {
	p, err := crc.Lookup("bch")
	require.NoError(t, err)

	fcs, err := Run(bitfield.BitField{Value: 0, Width: 48}, p)
	require.NoError(t, err)
	if fcs.Value != 0 {
		t.Fatalf("Expected: %d Got: %d\n", 0, fcs.Value)
	}
}

func TestDegreeZero(t *testing.T) {
	p, err := crc.NewPolynomial("1", 1)
	require.NoError(t, err)

	fcs, steps, err := Trace(bitfield.BitField{Value: 0b1011, Width: 4}, p)
	require.NoError(t, err)
	require.Equal(t, bitfield.BitField{}, fcs)
	require.Len(t, steps, 4)
	for _, step := range steps {
		assert.Equal(t, uint64(0), step.After)
	}
}

func TestErrors(t *testing.T) {
	_, err := Run(bitfield.BitField{Value: 1, Width: 1}, crc.Polynomial{})
	require.Equal(t, gf2.ErrZeroDivisor, errors.Cause(err))

	p, err := crc.Lookup("demo")
	require.NoError(t, err)

	_, err = Run(bitfield.BitField{Value: 0b111, Width: 2}, p)
	require.Equal(t, bitfield.ErrWidthMismatch, errors.Cause(err))
}

func TestTrace(t *testing.T) {
	p, err := crc.Lookup("demo")
	require.NoError(t, err)

	msg := bitfield.BitField{Value: 0b10001000100010001000000110000001, Width: 32}
	fcs, steps, err := Trace(msg, p)
	require.NoError(t, err)
	require.Len(t, steps, 38)

	plain, err := Run(msg, p)
	require.NoError(t, err)
	require.Equal(t, plain, fcs)

	for idx, step := range steps {
		assert.Equal(t, idx, step.Index)
		assert.Equal(t, idx >= 32, step.Flush)
		assert.Equal(t, uint(step.Before>>5&1), step.Feedback)
		if idx > 0 {
			assert.Equal(t, steps[idx-1].After, step.Before)
		}
	}
	require.Equal(t, fcs.Value, steps[len(steps)-1].After)

	require.Equal(t, []string{"0", "1", "0", "0b000000", "0b000001", "false"}, steps[0].Record())
}

type Input struct {
	Msg  bitfield.BitField
	Poly crc.Polynomial
}

// Generate a random polynomial and a message short enough that the
// codeword still fits in a register.
func (Input) Generate(rand *rand.Rand, size int) reflect.Value {
	degree := rand.Intn(bitfield.MaxDegree + 1)
	return reflect.ValueOf(Input{
		gen.NewRandMessage(rand, degree),
		gen.NewRandPoly(rand, degree),
	})
}

// The register must always agree with long division of the shifted message.
func TestEquivalence(t *testing.T) {
	err := quick.Check(func(in Input) bool {
		fcs, err := Run(in.Msg, in.Poly)
		if err != nil {
			return false
		}

		tx, err := crc.Encode(in.Msg, in.Poly)
		if err != nil {
			return false
		}

		return fcs == tx.FCS
	}, &quick.Config{MaxCount: 2048})

	if err != nil {
		t.Fatal("Error testing equivalence:", err)
	}
}

// Clocking the register by hand matches Run.
func TestClock(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 256; trial++ {
		p := gen.NewRandPoly(r, r.Intn(bitfield.MaxDegree+1))
		msg := gen.NewRandMessage(r, p.Degree())

		reg := NewRegister(p)
		for _, bit := range gen.UnpackBits(msg) {
			reg.Clock(uint(bit))
		}
		for idx := 0; idx < p.Degree(); idx++ {
			reg.Clock(0)
		}

		fcs, err := Run(msg, p)
		require.NoError(t, err)
		require.Equal(t, fcs.Value, reg.Value, "poly=0x%X, msg=%s", p.Value, msg)
	}
}
