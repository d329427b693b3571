package ip

import "testing"

// checkKernel verifies that every basis vector is nonzero and lies in
// the kernel of the problem's matrix.
func checkKernel(t *testing.T, p *Problem, basis [][]int) {
	t.Helper()
	for k, v := range basis {
		if len(v) != p.Vars() {
			t.Fatalf("basis[%d] has %d entries, want %d", k, len(v), p.Vars())
		}
		zero := true
		for _, x := range v {
			if x != 0 {
				zero = false
				break
			}
		}
		if zero {
			t.Errorf("basis[%d] is the zero vector", k)
		}
		for r, row := range p.Matrix() {
			s := 0
			for i, aij := range row {
				s += aij * v[i]
			}
			if s != 0 {
				t.Errorf("A*basis[%d] row %d = %d, want 0", k, r, s)
			}
		}
	}
}

func TestLatticeBasisCoin(t *testing.T) {
	p := coinProblem(t, nil, nil)
	basis := p.LatticeBasis()
	if len(basis) != 3 {
		t.Fatalf("LatticeBasis returned %d vectors, want 3", len(basis))
	}
	checkKernel(t, p, basis)
}

func TestLatticeBasisFullRank(t *testing.T) {
	p, err := New([][]int{{1, 0}, {0, 1}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if basis := p.LatticeBasis(); len(basis) != 0 {
		t.Errorf("LatticeBasis of a full-rank matrix = %v, want empty", basis)
	}
}

func TestLatticeBasisDependentRows(t *testing.T) {
	// Rank one: the second row repeats the first, the kernel is
	// spanned by the primitive vector (1, -1).
	p, err := New([][]int{{1, 1}, {2, 2}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	basis := p.LatticeBasis()
	if len(basis) != 1 {
		t.Fatalf("LatticeBasis returned %d vectors, want 1", len(basis))
	}
	checkKernel(t, p, basis)
	v := basis[0]
	if abs(v[0]) != 1 || abs(v[1]) != 1 {
		t.Errorf("kernel vector %v is not primitive", v)
	}
}

func TestLatticeBasisZeroMatrix(t *testing.T) {
	p, err := New([][]int{{0, 0, 0}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	basis := p.LatticeBasis()
	if len(basis) != 3 {
		t.Fatalf("LatticeBasis of the zero matrix returned %d vectors, want 3", len(basis))
	}
	checkKernel(t, p, basis)
}

func TestLatticeBasisMagicSquares(t *testing.T) {
	// 2x2 tables with equal row and column sums: the 3x4 constraint
	// matrix has rank 3, so the kernel is one-dimensional, spanned by
	// (1, -1, -1, 1).
	a := [][]int{
		{1, 1, -1, -1}, // row sums agree
		{1, -1, 1, -1}, // column sums agree
		{1, 1, 1, 1},   // total mass
	}
	p, err := New(a, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	basis := p.LatticeBasis()
	if len(basis) != 1 {
		t.Fatalf("LatticeBasis returned %d vectors, want 1", len(basis))
	}
	checkKernel(t, p, basis)
	v := basis[0]
	for i, x := range v {
		if abs(x) != 1 {
			t.Errorf("kernel vector %v entry %d should be a unit", v, i)
		}
	}
	if v[0] != v[3] || v[1] != v[2] || v[0] != -v[1] {
		t.Errorf("kernel vector %v is not a multiple of (1 -1 -1 1)", v)
	}
}
