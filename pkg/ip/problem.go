// Package ip models bounded integer programs
//
//	min C*x   subject to   A*x = b,  0 <= x <= u,  x integer
//
// and derives the lattice data a completion run works on: the monomial
// order induced by the cost rows, the truncation test that discards
// vectors no bounded-feasible point can ever use, a lattice basis of
// the kernel of A, and the fiber of a right-hand side.
package ip

import (
	"errors"
	"fmt"

	"github.com/umonteiro/toric/pkg/order"
)

var (
	// ErrNoMatrix indicates a problem without a constraint matrix.
	ErrNoMatrix = errors.New("ip: constraint matrix is required")

	// ErrDimensionMismatch indicates inconsistent matrix and vector
	// dimensions.
	ErrDimensionMismatch = errors.New("ip: dimension mismatch")

	// ErrInfeasiblePoint indicates a point outside the feasible region.
	ErrInfeasiblePoint = errors.New("ip: point violates constraints")

	// ErrNoRHS indicates an operation that needs a right-hand side on a
	// problem built without one.
	ErrNoRHS = errors.New("ip: right-hand side is required")
)

// Problem is an immutable integer program. The right-hand side b, the
// cost rows C and the upper bounds u are all optional: a nil b skips
// the fiber-dependent features, a nil C falls back to a plain grevlex
// order and a nil u leaves variables unbounded. A negative entry in u
// marks that single variable as unbounded.
type Problem struct {
	a       [][]int
	b       []int
	c       [][]int
	u       []int
	nonnegA bool
}

// New validates the dimensions and builds a problem. All slices are
// copied.
func New(a [][]int, b []int, c [][]int, u []int) (*Problem, error) {
	if len(a) == 0 || len(a[0]) == 0 {
		return nil, ErrNoMatrix
	}
	n := len(a[0])
	p := &Problem{a: copyRows(a), nonnegA: true}
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: matrix row %d has %d entries, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		for _, x := range row {
			if x < 0 {
				p.nonnegA = false
			}
		}
	}
	if b != nil {
		if len(b) != len(a) {
			return nil, fmt.Errorf("%w: rhs has %d entries, want %d", ErrDimensionMismatch, len(b), len(a))
		}
		p.b = append([]int(nil), b...)
	}
	for i, row := range c {
		if len(row) != n {
			return nil, fmt.Errorf("%w: cost row %d has %d entries, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}
	if c != nil {
		p.c = copyRows(c)
	}
	if u != nil {
		if len(u) != n {
			return nil, fmt.Errorf("%w: upper bounds have %d entries, want %d", ErrDimensionMismatch, len(u), n)
		}
		p.u = append([]int(nil), u...)
	}
	return p, nil
}

// Vars returns the number of variables.
func (p *Problem) Vars() int { return len(p.a[0]) }

// Rows returns the number of constraints.
func (p *Problem) Rows() int { return len(p.a) }

// Matrix returns a copy of the constraint matrix.
func (p *Problem) Matrix() [][]int { return copyRows(p.a) }

// RHS returns a copy of the right-hand side, or nil.
func (p *Problem) RHS() []int {
	if p.b == nil {
		return nil
	}
	return append([]int(nil), p.b...)
}

// Costs returns a copy of the cost rows, or nil.
func (p *Problem) Costs() [][]int {
	if p.c == nil {
		return nil
	}
	return copyRows(p.c)
}

// Upper returns a copy of the upper bounds, or nil.
func (p *Problem) Upper() []int {
	if p.u == nil {
		return nil
	}
	return append([]int(nil), p.u...)
}

// Order builds the monomial order of the problem: the cost rows
// refined by grevlex, or plain grevlex without costs. Cost rows that do
// not yield a global order are rejected with order.ErrNotGlobal.
func (p *Problem) Order() (*order.Order, error) {
	if p.c == nil {
		return order.Grevlex(p.Vars()), nil
	}
	return order.Weighted(p.c, p.Vars())
}

// Feasible is the truncation test: it reports whether both monomials of
// the difference vector v could occur in a feasible point. Bounds are
// checked componentwise against u, and when the matrix is nonnegative
// and b is present, row sums of both parts are checked against b. The
// test is conservative and returns true whenever no bound applies.
func (p *Problem) Feasible(v []int) bool {
	if p.u != nil {
		for i, x := range v {
			bound := p.u[i]
			if bound < 0 {
				continue
			}
			if x > bound || -x > bound {
				return false
			}
		}
	}
	if p.nonnegA && p.b != nil {
		for r, row := range p.a {
			head, tail := 0, 0
			for i, aij := range row {
				switch {
				case v[i] > 0:
					head += aij * v[i]
				case v[i] < 0:
					tail += aij * -v[i]
				}
			}
			if head > p.b[r] || tail > p.b[r] {
				return false
			}
		}
	}
	return true
}

// Satisfies checks that z is a feasible point: nonnegative, within the
// upper bounds, and on the fiber when b is present. It returns a
// wrapped ErrInfeasiblePoint naming the first violation.
func (p *Problem) Satisfies(z []int) error {
	if len(z) != p.Vars() {
		return fmt.Errorf("%w: point has %d entries, want %d", ErrDimensionMismatch, len(z), p.Vars())
	}
	for i, x := range z {
		if x < 0 {
			return fmt.Errorf("%w: z[%d] = %d is negative", ErrInfeasiblePoint, i, x)
		}
		if p.u != nil && p.u[i] >= 0 && x > p.u[i] {
			return fmt.Errorf("%w: z[%d] = %d exceeds bound %d", ErrInfeasiblePoint, i, x, p.u[i])
		}
	}
	if p.b != nil {
		for r, row := range p.a {
			s := 0
			for i, aij := range row {
				s += aij * z[i]
			}
			if s != p.b[r] {
				return fmt.Errorf("%w: row %d gives %d, want %d", ErrInfeasiblePoint, r, s, p.b[r])
			}
		}
	}
	return nil
}

// Cost evaluates every cost row at z. Without cost rows it returns nil.
func (p *Problem) Cost(z []int) []int {
	if p.c == nil {
		return nil
	}
	out := make([]int, len(p.c))
	for r, row := range p.c {
		for i, cij := range row {
			out[r] += cij * z[i]
		}
	}
	return out
}

func copyRows(rows [][]int) [][]int {
	cp := make([][]int, len(rows))
	for i, r := range rows {
		cp[i] = append([]int(nil), r...)
	}
	return cp
}
