// Cross-checks the division and register methods of computing a CRC.
package verify

import (
	"fmt"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/crc"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/bemasher/crclfsr/lfsr"
	"github.com/pkg/errors"
)

// Roundtrip reports whether codeword divides evenly by p.
func Roundtrip(codeword bitfield.BitField, p crc.Polynomial) (bool, error) {
	rem, err := crc.Check(codeword, p)
	if err != nil {
		return false, err
	}
	return rem.Value == 0, nil
}

// Equivalent reports whether two fcs values are numerically equal.
func Equivalent(division, register bitfield.BitField) bool {
	return division.Value == register.Value
}

// Detect checks a received word. It reports whether an error was detected
// along with the syndrome, the remainder of the received word.
func Detect(received bitfield.BitField, p crc.Polynomial) (bool, bitfield.BitField, error) {
	syndrome, err := crc.Check(received, p)
	if err != nil {
		return false, bitfield.BitField{}, err
	}
	return syndrome.Value != 0, syndrome, nil
}

// A Report collects the results of every method for a single message.
type Report struct {
	Poly crc.Polynomial
	crc.Transmission

	// Remainder of the codeword on receipt.
	Residue bitfield.BitField
	LFSR    bitfield.BitField

	// Byte-wise table result, only present for byte aligned messages.
	Table *bitfield.BitField `json:",omitempty"`

	Roundtrip  bool
	Equivalent bool
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	ok := r.Roundtrip && r.Equivalent
	if r.Table != nil {
		ok = ok && Equivalent(r.FCS, *r.Table)
	}
	return ok
}

func (r Report) String() string {
	return fmt.Sprintf("{Poly:0x%X FCS:%s LFSR:%s Codeword:%s Roundtrip:%t Equivalent:%t}",
		r.Poly.Value, r.FCS, r.LFSR, r.Codeword, r.Roundtrip, r.Equivalent,
	)
}

// Traces holds the intermediate steps behind a Report.
type Traces struct {
	Encode []gf2.Step
	Check  []gf2.Step
	LFSR   []lfsr.Step
}

// Run encodes msg, checks the codeword and compares the fcs against the
// register method.
func Run(msg bitfield.BitField, p crc.Polynomial) (Report, error) {
	r, _, err := run(msg, p, false)
	return r, err
}

// RunTrace is like Run but also returns the steps of each method.
func RunTrace(msg bitfield.BitField, p crc.Polynomial) (Report, Traces, error) {
	return run(msg, p, true)
}

func run(msg bitfield.BitField, p crc.Polynomial, trace bool) (r Report, tr Traces, err error) {
	r.Poly = p

	if trace {
		r.Transmission, tr.Encode, err = crc.EncodeTrace(msg, p)
	} else {
		r.Transmission, err = crc.Encode(msg, p)
	}
	if err != nil {
		return r, tr, errors.Wrap(err, "encode")
	}

	var check gf2.Result
	if trace {
		check, tr.Check, err = crc.CheckTrace(r.Codeword, p)
	} else {
		check, err = gf2.Divide(r.Codeword, p.Field())
	}
	if err != nil {
		return r, tr, errors.Wrap(err, "check")
	}
	r.Residue = check.Remainder
	r.Roundtrip = r.Residue.Value == 0

	if trace {
		r.LFSR, tr.LFSR, err = lfsr.Trace(msg, p)
	} else {
		r.LFSR, err = lfsr.Run(msg, p)
	}
	if err != nil {
		return r, tr, errors.Wrap(err, "lfsr")
	}
	r.Equivalent = Equivalent(r.FCS, r.LFSR)

	if data, ok := crc.Bytes(msg); ok {
		table, err := crc.NewTable(p)
		if err != nil {
			return r, tr, errors.Wrap(err, "table")
		}
		fcs := table.Checksum(data)
		r.Table = &fcs
	}

	return r, tr, nil
}
