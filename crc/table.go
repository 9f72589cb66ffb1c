package crc

import (
	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/pkg/errors"
)

// A Table computes the same remainder as Encode a byte at a time. The
// register is at least 8 bits wide, narrower polynomials are scaled up by
// x^(8-m) and the result scaled back down.
type Table struct {
	Poly Polynomial

	width int
	shift uint
	tbl   [256]uint64
}

func NewTable(p Polynomial) (table Table, err error) {
	if p.Value == 0 {
		return table, errors.Wrapf(gf2.ErrZeroDivisor, "table for %q", p.Name)
	}

	table.Poly = p
	table.width = p.Degree()
	if table.width < 8 {
		table.width = 8
	}
	table.shift = uint(table.width - p.Degree())

	poly := p.Low() << table.shift
	top := uint64(1) << uint(table.width-1)
	mask := bitfield.Mask(table.width)

	for tIdx := range table.tbl {
		crc := uint64(tIdx) << uint(table.width-8)
		for bIdx := 0; bIdx < 8; bIdx++ {
			if crc&top != 0 {
				crc = (crc<<1 ^ poly) & mask
			} else {
				crc = crc << 1 & mask
			}
		}
		table.tbl[tIdx] = crc
	}

	return table, nil
}

// Checksum returns the fcs of data, most significant byte first.
func (table Table) Checksum(data []byte) bitfield.BitField {
	mask := bitfield.Mask(table.width)
	hi := uint(table.width - 8)

	var crc uint64
	for _, v := range data {
		crc = (crc<<8 ^ table.tbl[byte(crc>>hi)^v]) & mask
	}

	return bitfield.BitField{Value: crc >> table.shift, Width: table.Poly.Degree()}
}

// Bytes splits a byte aligned message into big-endian bytes. It reports
// false for messages whose width is not a multiple of 8.
func Bytes(msg bitfield.BitField) ([]byte, bool) {
	if msg.Width%8 != 0 {
		return nil, false
	}

	data := make([]byte, msg.Width/8)
	for idx := range data {
		data[idx] = byte(msg.Value >> uint(msg.Width-8*(idx+1)))
	}
	return data, true
}
