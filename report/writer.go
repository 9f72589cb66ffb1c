package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bemasher/crclfsr/bitfield"
	"github.com/bemasher/crclfsr/csv"
	"github.com/bemasher/crclfsr/gf2"
	"github.com/bemasher/crclfsr/lfsr"
	"github.com/bemasher/crclfsr/verify"
	"github.com/pkg/errors"
)

type Format string

const (
	Plain Format = "plain"
	CSV   Format = "csv"
	JSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Plain, CSV, JSON:
		return f, nil
	default:
		return "", errors.Errorf("invalid output format: %q", s)
	}
}

// A Writer formats transcripts. Write errors are sticky: after the first
// failure every call is a no-op and Err reports the failure.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *Writer) repeat(c string, n int) {
	if n > 0 {
		w.printf("%s", strings.Repeat(c, n))
	}
}

func (w *Writer) bits(label string, bf bitfield.BitField) {
	w.printf("%s%s\n", label, bitfield.MustRender(bf.Value, bf.Width))
}

// Heading writes a section title.
func (w *Writer) Heading(title string) error {
	w.printf("\n=== %s ===\n\n", title)
	return w.err
}

// Division draws a long division diagram. Each partial remainder is aligned
// under the dividend bits it was computed from, and every dividend bit not
// yet brought down is marked with a '|'.
func (w *Writer) Division(dividend, divisor bitfield.BitField, res gf2.Result, steps []gf2.Step) error {
	r := divisor.Len()
	binw := len(bitfield.Prefix) + r

	if dividend.Width < r {
		w.printf("Modulo 2 division (dividend shorter than divisor)\n")
		w.printf("%s |__ %s\n", dividend, bitfield.MustRender(divisor.Value, r))
		w.bits("Quotient:  ", res.Quotient)
		w.bits("Remainder: ", res.Remainder)
		return w.err
	}

	w.printf("Modulo 2 division\n")
	w.printf("%s |__ %s\n", dividend, bitfield.MustRender(divisor.Value, r))

	for _, step := range steps {
		w.repeat(" ", step.Column)
		w.printf("%*s", binw, bitfield.MustRender(step.Row, r))
		w.repeat("|", step.Pending)
		w.printf("\n")

		w.repeat(" ", step.Column)
		w.repeat("-", binw)
		w.repeat("|", step.Pending)
		w.printf("\n")

		w.repeat(" ", step.Column+1)
		w.printf("%*s", binw, bitfield.MustRender(step.Next, r))
		w.repeat("|", step.Pending-1)
		w.printf("\n")
	}

	w.printf("\n")
	w.bits("Quotient:  ", res.Quotient)
	w.bits("Remainder: ", res.Remainder)

	return w.err
}

// LFSR writes the register evolution table.
func (w *Writer) LFSR(steps []lfsr.Step) error {
	w.printf("step  | i | msb(old) |  r[m-1]..r[0]      ->   r'[m-1]..r'[0]\n")
	for _, step := range steps {
		before := bitfield.MustRender(step.Before, step.Width)
		after := bitfield.MustRender(step.After, step.Width)
		w.printf("%5d | %d |     %d    |  %-16s  ->   %s\n",
			step.Index, step.In, step.Feedback,
			strings.TrimPrefix(before, bitfield.Prefix),
			strings.TrimPrefix(after, bitfield.Prefix),
		)
	}
	return w.err
}

// Transmission writes the fcs and codeword produced by division.
func (w *Writer) Transmission(r verify.Report) error {
	w.printf("\n")
	w.bits("FCS (division):   ", r.FCS)
	w.bits("Codeword:         ", r.Codeword)
	w.printf("\n")
	return w.err
}

// Receipt writes the result of checking a codeword.
func (w *Writer) Receipt(ok bool) error {
	if ok {
		w.printf("\nTransmission succeeded.\n")
	} else {
		w.printf("\nTransmission failed.\n")
	}
	return w.err
}

// Detection writes the result of checking an arbitrary received word.
func (w *Writer) Detection(received, syndrome bitfield.BitField, detected bool) error {
	w.bits("Received:         ", received)
	w.bits("Syndrome:         ", syndrome)
	if detected {
		w.printf("Result:           error detected\n")
	} else {
		w.printf("Result:           no error detected\n")
	}
	return w.err
}

// Summary compares the fcs of every method.
func (w *Writer) Summary(r verify.Report) error {
	w.printf("\n")
	w.bits("FCS (LFSR):       ", r.LFSR)
	if r.Table != nil {
		w.bits("FCS (table):      ", *r.Table)
	}
	w.printf("Comparison:       %s\n", verdict(r.OK()))
	return w.err
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "DIVERGE"
}

// Transcript writes the full plain text report. Without traces only the
// results are written.
func (w *Writer) Transcript(r verify.Report, tr verify.Traces, verbose bool) error {
	w.Heading("CRC by modulo 2 division")
	w.printf("Polynomial:       %s (%s)\n", r.Poly.Terms(), r.Poly.Field())
	w.bits("Message:          ", r.Message)
	w.printf("\n")
	if verbose {
		w.Division(r.Shifted, r.Poly.Field(), gf2.Result{Quotient: r.Quotient, Remainder: r.FCS}, tr.Encode)
	}
	w.Transmission(r)

	w.printf("Check on receipt (codeword / polynomial):\n")
	if verbose {
		w.Division(r.Codeword, r.Poly.Field(), gf2.Result{Quotient: r.Quotient, Remainder: r.Residue}, tr.Check)
	} else {
		w.bits("Remainder: ", r.Residue)
	}
	w.Receipt(r.Roundtrip)

	w.Heading("LFSR")
	if verbose {
		w.LFSR(tr.LFSR)
	}
	return w.Summary(r)
}

// Emit writes r in the given format. The csv format writes the register
// table and requires traces.
func Emit(out io.Writer, format Format, r verify.Report, tr verify.Traces, verbose bool) error {
	switch format {
	case Plain:
		return NewWriter(out).Transcript(r, tr, verbose)
	case CSV:
		enc := csv.NewEncoder(out)
		if err := enc.Header("step", "in", "feedback", "before", "after", "flush"); err != nil {
			return err
		}
		for _, step := range tr.LFSR {
			if err := enc.Encode(step); err != nil {
				return err
			}
		}
		return nil
	case JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "\t")
		return enc.Encode(r)
	default:
		return errors.Errorf("invalid output format: %q", format)
	}
}
