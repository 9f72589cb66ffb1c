package gf2

import "math/bits"

// A Poly is a polynomial over GF(2) mod x^64, bit i holding the coefficient
// of x^i.
type Poly uint64

// Plus returns the sum of p and q as polynomials over GF(2), which is
// just the bitwise xor of the two.
func (p Poly) Plus(q Poly) Poly {
	return p ^ q
}

// Times returns the product of p and q as polynomials over GF(2), mod
// x^64.
func (p Poly) Times(q Poly) Poly {
	var prod Poly
	for p != 0 && q != 0 {
		if q&1 != 0 {
			prod ^= p
		}
		q >>= 1
		p <<= 1
	}
	return prod
}

// Degree returns the degree of p, -1 for the zero polynomial.
func (p Poly) Degree() int {
	return bits.Len64(uint64(p)) - 1
}

// Div returns the quotient and remainder of p divided by q. It panics
// if q is zero.
func (p Poly) Div(q Poly) (quo, rem Poly) {
	if q == 0 {
		panic("gf2: division by zero polynomial")
	}

	dq := q.Degree()
	rem = p
	for d := rem.Degree(); d >= dq; d = rem.Degree() {
		shift := uint(d - dq)
		quo |= 1 << shift
		rem ^= q << shift
	}
	return quo, rem
}
