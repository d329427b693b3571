// Package order implements monomial orders on integer exponent vectors
// and module monomial orders on signatures.
//
// Every order here is a matrix order: a weight matrix W fixes the order,
// and a monomial x^a precedes x^b exactly when the first nonzero entry
// of W*(b-a), scanning rows top to bottom, is positive. Integer weight
// rows are sufficient for the orders that show up in integer
// programming, where the first rows are cost vectors and the remaining
// rows break ties.
//
// # Globality
//
// An order is global (a term order) when 1 is the smallest monomial,
// equivalently when for every column of W the first nonzero entry is
// positive. Constructors validate this and reject matrices that fail
// it, so a successfully built Order is always safe to run a completion
// loop under.
package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMatrix indicates a weight matrix with no rows or no columns.
	ErrEmptyMatrix = errors.New("order: weight matrix must be non-empty")

	// ErrRowLength indicates weight rows of inconsistent length.
	ErrRowLength = errors.New("order: weight rows must have equal length")

	// ErrNotGlobal indicates a weight matrix that does not define a
	// global order. Completion loops are only guaranteed to terminate
	// under global orders, so these matrices are rejected outright.
	ErrNotGlobal = errors.New("order: weight matrix does not define a global order")
)

// Order is a matrix monomial order on exponent vectors of a fixed
// length. The zero value is not usable; build one with Matrix, Lex,
// Grevlex or Weighted.
type Order struct {
	n    int
	rows [][]int
}

// Matrix builds an order from explicit weight rows. The rows are copied.
// It returns ErrNotGlobal if some variable's first nonzero weight is not
// positive, and ErrEmptyMatrix or ErrRowLength for malformed input.
func Matrix(rows [][]int) (*Order, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	n := len(rows[0])
	cp := make([][]int, len(rows))
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrRowLength, i, len(r), n)
		}
		cp[i] = append([]int(nil), r...)
	}
	o := &Order{n: n, rows: cp}
	for j := 0; j < n; j++ {
		if !columnGlobal(cp, j) {
			return nil, fmt.Errorf("%w: variable %d", ErrNotGlobal, j)
		}
	}
	return o, nil
}

// columnGlobal reports whether the first nonzero weight in column j is
// positive. A column of all zeros leaves two monomials incomparable and
// is rejected as well.
func columnGlobal(rows [][]int, j int) bool {
	for _, r := range rows {
		if r[j] > 0 {
			return true
		}
		if r[j] < 0 {
			return false
		}
	}
	return false
}

// Lex returns the lexicographic order on n variables, x1 > x2 > ... > xn.
func Lex(n int) *Order {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
		rows[i][i] = 1
	}
	return &Order{n: n, rows: rows}
}

// Grevlex returns the degree reverse lexicographic order on n
// variables: total degree first, ties broken against the last variable.
func Grevlex(n int) *Order {
	rows := make([][]int, n)
	rows[0] = make([]int, n)
	for j := range rows[0] {
		rows[0][j] = 1
	}
	for i := 1; i < n; i++ {
		rows[i] = make([]int, n)
		rows[i][n-i] = -1
	}
	return &Order{n: n, rows: rows}
}

// Weighted stacks the given weight rows (typically cost vectors) on top
// of a grevlex tie-break and validates the result. Cost rows with
// negative entries are fine as long as a positive weight appears above
// every variable's first negative one; otherwise ErrNotGlobal is
// returned.
func Weighted(weights [][]int, n int) (*Order, error) {
	rows := make([][]int, 0, len(weights)+n)
	rows = append(rows, weights...)
	rows = append(rows, Grevlex(n).rows...)
	return Matrix(rows)
}

// Vars returns the number of variables the order compares.
func (o *Order) Vars() int { return o.n }

// Compare orders two exponent vectors. It returns -1 when x^a < x^b,
// +1 when x^a > x^b and 0 when a and b are equal. Both slices must have
// length Vars.
func (o *Order) Compare(a, b []int) int {
	for _, row := range o.rows {
		d := 0
		for j, w := range row {
			d += w * (a[j] - b[j])
		}
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}
	return 0
}

// Less reports whether x^a < x^b.
func (o *Order) Less(a, b []int) bool { return o.Compare(a, b) < 0 }

// Sign orients a difference vector v: it returns +1 when the monomial
// of the positive part of v dominates the monomial of the negative
// part, -1 for the reverse, and 0 only for the zero vector. This is the
// sign of the first nonzero entry of W*v.
func (o *Order) Sign(v []int) int {
	for _, row := range o.rows {
		d := 0
		for j, w := range row {
			d += w * v[j]
		}
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}
	return 0
}
