package ip

// LatticeBasis returns a basis of the integer kernel of the constraint
// matrix: vectors v with A*v = 0 whose integer spans exhaust the
// kernel. The basis is computed by column reduction to Hermite form
// while tracking the unimodular column operations; the kernel columns
// of the transform are the basis.
//
// The kernel spans the lattice of moves between points of a fiber, but
// the binomials of a kernel basis may generate a strict subideal of the
// full lattice ideal. Callers holding a Markov basis should pass it as
// explicit generators instead.
//
// # Algorithm
//
// Rows are processed top to bottom. For the current row, repeated
// column subtractions shrink the entries right of the pivot column to
// zero (a gcd elimination), every operation mirrored on an identity
// matrix U. Columns that end up zero in all rows are kernel columns;
// AU = H column for column.
func (p *Problem) LatticeBasis() [][]int {
	m, n := p.Rows(), p.Vars()
	h := copyRows(p.a)
	u := identity(n)
	c := 0
	for r := 0; r < m && c < n; r++ {
		for {
			// Pick the column with the smallest nonzero entry in row r.
			piv := -1
			for j := c; j < n; j++ {
				if h[r][j] == 0 {
					continue
				}
				if piv < 0 || abs(h[r][j]) < abs(h[r][piv]) {
					piv = j
				}
			}
			if piv < 0 {
				break // row already clear, no pivot consumed
			}
			swapCols(h, u, c, piv)
			done := true
			for j := c + 1; j < n; j++ {
				if h[r][j] == 0 {
					continue
				}
				q := h[r][j] / h[r][c]
				addCol(h, u, j, c, -q)
				if h[r][j] != 0 {
					done = false
				}
			}
			if done {
				if h[r][c] < 0 {
					scaleCol(h, u, c, -1)
				}
				c++
				break
			}
		}
	}
	kernel := make([][]int, 0, n-c)
	for j := c; j < n; j++ {
		col := make([]int, n)
		for i := 0; i < n; i++ {
			col[i] = u[i][j]
		}
		kernel = append(kernel, col)
	}
	return kernel
}

func identity(n int) [][]int {
	id := make([][]int, n)
	for i := range id {
		id[i] = make([]int, n)
		id[i][i] = 1
	}
	return id
}

// swapCols exchanges columns a and b of both matrices.
func swapCols(h, u [][]int, a, b int) {
	if a == b {
		return
	}
	for i := range h {
		h[i][a], h[i][b] = h[i][b], h[i][a]
	}
	for i := range u {
		u[i][a], u[i][b] = u[i][b], u[i][a]
	}
}

// addCol adds factor times column src to column dst of both matrices.
func addCol(h, u [][]int, dst, src, factor int) {
	for i := range h {
		h[i][dst] += factor * h[i][src]
	}
	for i := range u {
		u[i][dst] += factor * u[i][src]
	}
}

// scaleCol multiplies column j by factor (only +-1 keeps U unimodular).
func scaleCol(h, u [][]int, j, factor int) {
	for i := range h {
		h[i][j] *= factor
	}
	for i := range u {
		u[i][j] *= factor
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
