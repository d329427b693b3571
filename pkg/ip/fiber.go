package ip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnboundedFiber indicates a fiber with no finite bound on some
	// variable, which cannot be enumerated.
	ErrUnboundedFiber = errors.New("ip: fiber is not finite")

	// ErrFiberLimit indicates an enumeration cut off by the point limit.
	ErrFiberLimit = errors.New("ip: fiber exceeds point limit")
)

// Fiber enumerates the lattice points {z : A*z = b, 0 <= z <= u} in
// lexicographic order. Enumeration needs a finite bound per variable,
// either from u or derived from a nonnegative constraint row; otherwise
// ErrUnboundedFiber is returned. A positive limit caps the number of
// points and trips ErrFiberLimit beyond it; limit <= 0 means no cap.
func (p *Problem) Fiber(limit int) ([][]int, error) {
	if p.b == nil {
		return nil, ErrNoRHS
	}
	bounds, err := p.varBounds()
	if err != nil {
		return nil, err
	}
	n := p.Vars()
	var points [][]int
	z := make([]int, n)
	sums := make([]int, p.Rows())
	var walk func(i int) error
	walk = func(i int) error {
		if i == n {
			for r := range sums {
				if sums[r] != p.b[r] {
					return nil
				}
			}
			if limit > 0 && len(points) >= limit {
				return fmt.Errorf("%w: %d", ErrFiberLimit, limit)
			}
			points = append(points, append([]int(nil), z...))
			return nil
		}
		for val := 0; val <= bounds[i]; val++ {
			z[i] = val
			ok := true
			for r, row := range p.a {
				sums[r] += row[i] * val
				// Nonnegative rows cannot recover from an overshoot.
				if p.nonnegA && sums[r] > p.b[r] {
					ok = false
				}
			}
			if ok {
				if err := walk(i + 1); err != nil {
					return err
				}
			}
			for r, row := range p.a {
				sums[r] -= row[i] * val
			}
			z[i] = 0
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, err
	}
	return points, nil
}

// varBounds returns a finite upper bound per variable, preferring u and
// falling back to b[r]/a[r][i] for nonnegative rows with a positive
// coefficient.
func (p *Problem) varBounds() ([]int, error) {
	n := p.Vars()
	bounds := make([]int, n)
	for i := 0; i < n; i++ {
		bound := -1
		if p.u != nil && p.u[i] >= 0 {
			bound = p.u[i]
		}
		for r, row := range p.a {
			if row[i] <= 0 || p.b[r] < 0 {
				continue
			}
			rowNonneg := true
			for _, x := range row {
				if x < 0 {
					rowNonneg = false
					break
				}
			}
			if !rowNonneg {
				continue
			}
			if derived := p.b[r] / row[i]; bound < 0 || derived < bound {
				bound = derived
			}
		}
		if bound < 0 {
			return nil, fmt.Errorf("%w: variable %d", ErrUnboundedFiber, i)
		}
		bounds[i] = bound
	}
	return bounds, nil
}

// FiberGraph is the undirected graph on the points of a fiber whose
// edges connect points differing by one of the given vectors. With the
// vectors of a Gröbner basis the graph is connected; fewer vectors may
// leave it in pieces, which is what the fiber command visualizes.
type FiberGraph struct {
	Points [][]int
	Edges  [][2]int
}

// FiberGraph enumerates the fiber and connects points differing by a
// basis move.
func (p *Problem) FiberGraph(vectors [][]int, limit int) (*FiberGraph, error) {
	points, err := p.Fiber(limit)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(points))
	for i, pt := range points {
		index[pointKey(pt)] = i
	}
	g := &FiberGraph{Points: points}
	seen := make(map[[2]int]bool)
	move := make([]int, p.Vars())
	for i, pt := range points {
		for _, v := range vectors {
			for k := range move {
				move[k] = pt[k] - v[k]
			}
			j, ok := index[pointKey(move)]
			if !ok || j == i {
				continue
			}
			e := [2]int{i, j}
			if j < i {
				e = [2]int{j, i}
			}
			if !seen[e] {
				seen[e] = true
				g.Edges = append(g.Edges, e)
			}
		}
	}
	return g, nil
}

// Connected reports whether every point is reachable from the first.
// The empty graph counts as connected.
func (g *FiberGraph) Connected() bool { return g.Components() <= 1 }

// Components returns the number of connected components.
func (g *FiberGraph) Components() int {
	n := len(g.Points)
	if n == 0 {
		return 0
	}
	adj := make([][]int, n)
	for _, e := range g.Edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	seen := make([]bool, n)
	comps := 0
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		comps++
		queue := []int{s}
		seen[s] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return comps
}

// DOT renders the graph as Graphviz source. A nonnegative highlight
// index draws that point filled, used for the fiber's optimum.
func (g *FiberGraph) DOT(highlight int) string {
	var sb strings.Builder
	sb.WriteString("graph fiber {\n")
	sb.WriteString("  node [shape=box, fontname=\"Helvetica\", fontsize=10];\n")
	for i, pt := range g.Points {
		attrs := ""
		if i == highlight {
			attrs = ", style=filled, fillcolor=\"#b7e3b1\""
		}
		fmt.Fprintf(&sb, "  n%d [label=\"%s\"%s];\n", i, pointLabel(pt), attrs)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "  n%d -- n%d;\n", e[0], e[1])
	}
	sb.WriteString("}\n")
	return sb.String()
}

func pointKey(pt []int) string {
	var sb strings.Builder
	for i, x := range pt {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", x)
	}
	return sb.String()
}

func pointLabel(pt []int) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, x := range pt {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", x)
	}
	sb.WriteByte(')')
	return sb.String()
}
