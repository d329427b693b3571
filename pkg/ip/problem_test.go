package ip

import (
	"errors"
	"reflect"
	"testing"

	"github.com/umonteiro/toric/pkg/order"
)

// coinProblem is the change-making program over pennies, nickels,
// dimes and quarters: one constraint row (1 5 10 25), unit costs.
func coinProblem(t *testing.T, b []int, u []int) *Problem {
	t.Helper()
	p, err := New([][]int{{1, 5, 10, 25}}, b, [][]int{{1, 1, 1, 1}}, u)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		a    [][]int
		b    []int
		c    [][]int
		u    []int
		want error
	}{
		{name: "nil matrix", a: nil, want: ErrNoMatrix},
		{name: "no rows", a: [][]int{}, want: ErrNoMatrix},
		{name: "empty row", a: [][]int{{}}, want: ErrNoMatrix},
		{name: "ragged matrix", a: [][]int{{1, 2}, {3}}, want: ErrDimensionMismatch},
		{name: "short rhs", a: [][]int{{1, 2}, {3, 4}}, b: []int{1}, want: ErrDimensionMismatch},
		{name: "short cost row", a: [][]int{{1, 2}}, c: [][]int{{1}}, want: ErrDimensionMismatch},
		{name: "long bounds", a: [][]int{{1, 2}}, u: []int{1, 2, 3}, want: ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.a, tc.b, tc.c, tc.u); !errors.Is(err, tc.want) {
				t.Errorf("New() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewCopiesInputs(t *testing.T) {
	a := [][]int{{1, 5, 10, 25}}
	b := []int{63}
	p, err := New(a, b, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a[0][0] = 99
	b[0] = -1
	if got := p.Matrix(); got[0][0] != 1 {
		t.Errorf("Matrix()[0][0] = %d after mutating input, want 1", got[0][0])
	}
	if got := p.RHS(); got[0] != 63 {
		t.Errorf("RHS()[0] = %d after mutating input, want 63", got[0])
	}

	// Accessors hand out copies too.
	p.Matrix()[0][1] = 99
	if got := p.Matrix(); got[0][1] != 5 {
		t.Errorf("Matrix()[0][1] = %d after mutating a copy, want 5", got[0][1])
	}
}

func TestDimensions(t *testing.T) {
	p := coinProblem(t, []int{63}, nil)
	if p.Vars() != 4 {
		t.Errorf("Vars() = %d, want 4", p.Vars())
	}
	if p.Rows() != 1 {
		t.Errorf("Rows() = %d, want 1", p.Rows())
	}
	if p.Upper() != nil {
		t.Errorf("Upper() = %v, want nil", p.Upper())
	}
}

func TestOrderFromCosts(t *testing.T) {
	// Minimizing nickels orients penny-to-nickel trades the opposite
	// way from plain grevlex.
	v := []int{1, -1, 0, 0}

	p, err := New([][]int{{1, 5, 10, 25}}, nil, [][]int{{0, 1, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o, err := p.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if got := o.Sign(v); got != -1 {
		t.Errorf("cost order Sign(%v) = %d, want -1", v, got)
	}

	noCost, err := New([][]int{{1, 5, 10, 25}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g, err := noCost.Order()
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if got := g.Sign(v); got != 1 {
		t.Errorf("grevlex Sign(%v) = %d, want 1", v, got)
	}
}

func TestOrderRejectsNonGlobalCosts(t *testing.T) {
	p, err := New([][]int{{1, 1}}, nil, [][]int{{-1, 1}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Order(); !errors.Is(err, order.ErrNotGlobal) {
		t.Errorf("Order() error = %v, want %v", err, order.ErrNotGlobal)
	}
}

func TestFeasibleUpperBounds(t *testing.T) {
	p, err := New([][]int{{1, 1, 1}}, nil, nil, []int{2, -1, 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		v    []int
		want bool
	}{
		{[]int{1, 0, 0}, true},
		{[]int{2, -5, 0}, true},   // u[1] < 0 leaves x2 unbounded
		{[]int{3, 0, 0}, false},   // head exceeds u[0]
		{[]int{-3, 1, 0}, false},  // tail exceeds u[0]
		{[]int{0, 0, 1}, false},   // u[2] = 0 forbids x3 entirely
		{[]int{1, 99, 0}, true},
		{[]int{-2, 2, 0}, true},
	}
	for _, tc := range tests {
		if got := p.Feasible(tc.v); got != tc.want {
			t.Errorf("Feasible(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestFeasibleRowSums(t *testing.T) {
	// Nonnegative matrix with a right-hand side: no monomial of the
	// vector may overshoot b in any row.
	p := coinProblem(t, []int{30}, nil)
	tests := []struct {
		v    []int
		want bool
	}{
		{[]int{5, -1, 0, 0}, true},   // 5 cents on both sides
		{[]int{30, -2, -2, 0}, true}, // 30 = 30
		{[]int{31, -2, -2, 0}, false},
		{[]int{0, -1, -3, 1}, false}, // tail worth 35 cents
		{[]int{0, 1, 0, -1}, true},
	}
	for _, tc := range tests {
		if got := p.Feasible(tc.v); got != tc.want {
			t.Errorf("Feasible(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}

	// Without b the row check is off and everything passes.
	free := coinProblem(t, nil, nil)
	if !free.Feasible([]int{1000, 0, 0, -1000}) {
		t.Error("Feasible without rhs rejected a vector")
	}
}

func TestSatisfies(t *testing.T) {
	p := coinProblem(t, []int{63}, []int{100, 100, 100, 2})
	if err := p.Satisfies([]int{3, 0, 1, 2}); err != nil {
		t.Errorf("Satisfies(optimum) = %v, want nil", err)
	}
	tests := []struct {
		name string
		z    []int
		want error
	}{
		{"wrong length", []int{1, 2}, ErrDimensionMismatch},
		{"negative entry", []int{-1, 0, 1, 2}, ErrInfeasiblePoint},
		{"exceeds bound", []int{3, 0, 1, 3}, ErrInfeasiblePoint},
		{"off the fiber", []int{4, 0, 1, 2}, ErrInfeasiblePoint},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := p.Satisfies(tc.z); !errors.Is(err, tc.want) {
				t.Errorf("Satisfies(%v) = %v, want %v", tc.z, err, tc.want)
			}
		})
	}
}

func TestCost(t *testing.T) {
	p, err := New([][]int{{1, 5, 10, 25}}, nil, [][]int{{1, 1, 1, 1}, {0, 0, 0, 1}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := p.Cost([]int{3, 0, 1, 2})
	if want := []int{6, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Cost = %v, want %v", got, want)
	}

	noCost, err := New([][]int{{1, 1}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := noCost.Cost([]int{1, 1}); got != nil {
		t.Errorf("Cost without cost rows = %v, want nil", got)
	}
}
