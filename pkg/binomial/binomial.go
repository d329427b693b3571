// Package binomial represents pure-difference binomials x^(v+) - x^(v-)
// as integer vectors v and implements the arithmetic a completion loop
// needs on sets of them: S-vector construction, normal-form reduction,
// minimalization and interreduction.
//
// Working on vectors instead of polynomial terms is what makes the
// lattice-ideal case fast: subtracting two binomials with equal heads
// is a single vector subtraction, and common monomial factors cancel
// silently in the arithmetic.
package binomial

import (
	"errors"
	"fmt"

	"github.com/umonteiro/toric/pkg/order"
)

var (
	// ErrZeroVector indicates an attempt to build a binomial from the
	// zero vector, which represents the zero polynomial and never
	// belongs in a basis.
	ErrZeroVector = errors.New("binomial: zero vector")

	// ErrVectorLength indicates a vector whose length does not match
	// the order's variable count.
	ErrVectorLength = errors.New("binomial: vector length does not match order")
)

// Binomial is an oriented exponent vector: the positive part is the
// leading monomial under the set's order. Orientation, supports and the
// head degree are fixed at construction and refreshed after in-place
// reductions.
type Binomial struct {
	v        []int
	headSupp Support
	tailSupp Support
	degree   int
}

// New orients v under o and wraps it. The vector is copied. It returns
// ErrZeroVector for the zero vector and ErrVectorLength on a length
// mismatch.
func New(v []int, o *order.Order) (*Binomial, error) {
	if len(v) != o.Vars() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(v), o.Vars())
	}
	cp := append([]int(nil), v...)
	switch o.Sign(cp) {
	case 0:
		return nil, ErrZeroVector
	case -1:
		negate(cp)
	}
	b := &Binomial{v: cp}
	b.refresh()
	return b, nil
}

// MustNew is New for vectors already known to be valid, typically the
// nonzero output of a reduction. It panics where New would error.
func MustNew(v []int, o *order.Order) *Binomial {
	b, err := New(v, o)
	if err != nil {
		panic(err)
	}
	return b
}

// refresh recomputes the cached supports and head degree from v.
func (b *Binomial) refresh() {
	b.headSupp = supportOf(b.v, 1)
	b.tailSupp = supportOf(b.v, -1)
	d := 0
	for _, x := range b.v {
		if x > 0 {
			d += x
		}
	}
	b.degree = d
}

// Vector returns a copy of the oriented vector.
func (b *Binomial) Vector() []int {
	return append([]int(nil), b.v...)
}

// Head returns a copy of the positive part, the leading exponent.
func (b *Binomial) Head() []int {
	h := make([]int, len(b.v))
	for i, x := range b.v {
		if x > 0 {
			h[i] = x
		}
	}
	return h
}

// Tail returns a copy of the negative part as nonnegative exponents.
func (b *Binomial) Tail() []int {
	t := make([]int, len(b.v))
	for i, x := range b.v {
		if x < 0 {
			t[i] = -x
		}
	}
	return t
}

// Degree returns the total degree of the leading monomial.
func (b *Binomial) Degree() int { return b.degree }

// Len returns the number of variables.
func (b *Binomial) Len() int { return len(b.v) }

// headDivides reports whether the head of b divides the monomial with
// exponent vector m (entries of m outside b's head support are free).
func (b *Binomial) headDivides(m []int) bool {
	for i, x := range b.v {
		if x > 0 && x > m[i] {
			return false
		}
	}
	return true
}

func negate(v []int) {
	for i := range v {
		v[i] = -v[i]
	}
}

func isZero(v []int) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// positivePart returns max(v, 0) componentwise.
func positivePart(v []int) []int {
	h := make([]int, len(v))
	for i, x := range v {
		if x > 0 {
			h[i] = x
		}
	}
	return h
}

// negativePart returns max(-v, 0) componentwise.
func negativePart(v []int) []int {
	t := make([]int, len(v))
	for i, x := range v {
		if x < 0 {
			t[i] = -x
		}
	}
	return t
}
