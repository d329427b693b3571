package ip

// NormalFormWalk lowers a feasible point along difference vectors until
// none applies, returning the final point and the number of moves. A
// vector v applies when z - v stays nonnegative and within the upper
// bounds. The vectors must be oriented under the problem's order (the
// positive part leading); every move then strictly lowers the point's
// monomial, so the walk terminates. When the vectors form a Gröbner
// basis of the fiber's ideal the result is the order-minimal point of
// the fiber, the optimum for cost-refined orders.
func (p *Problem) NormalFormWalk(z []int, vectors [][]int) ([]int, int, error) {
	if err := p.Satisfies(z); err != nil {
		return nil, 0, err
	}
	cur := append([]int(nil), z...)
	steps := 0
	for {
		moved := false
		for _, v := range vectors {
			if !p.moveApplies(cur, v) {
				continue
			}
			for i := range cur {
				cur[i] -= v[i]
			}
			steps++
			moved = true
			break
		}
		if !moved {
			return cur, steps, nil
		}
	}
}

// moveApplies reports whether z - v is a feasible point, assuming z is.
func (p *Problem) moveApplies(z, v []int) bool {
	for i, x := range v {
		next := z[i] - x
		if next < 0 {
			return false
		}
		if p.u != nil && p.u[i] >= 0 && next > p.u[i] {
			return false
		}
	}
	return true
}
