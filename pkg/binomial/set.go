package binomial

import (
	"github.com/umonteiro/toric/pkg/order"
)

// Set is an ordered collection of oriented binomials: the live basis of
// a completion run. Elements are appended, reduced in place and removed
// only by Minimalize, so positions handed out while the set only grows
// stay valid. A Set is owned by a single run and is not safe for
// concurrent use.
type Set struct {
	ord   *order.Order
	elems []*Binomial
}

// NewSet returns an empty set ordered by o.
func NewSet(o *order.Order) *Set {
	return &Set{ord: o}
}

// Order returns the monomial order the set reduces under.
func (s *Set) Order() *order.Order { return s.ord }

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// At returns the element at position i.
func (s *Set) At(i int) *Binomial { return s.elems[i] }

// Append adds an already oriented binomial to the end of the set.
func (s *Set) Append(b *Binomial) {
	s.elems = append(s.elems, b)
}

// AppendVector orients v under the set's order and appends it.
func (s *Set) AppendVector(v []int) error {
	b, err := New(v, s.ord)
	if err != nil {
		return err
	}
	s.Append(b)
	return nil
}

// Vectors copies out the oriented vectors in element order.
func (s *Set) Vectors() [][]int {
	out := make([][]int, len(s.elems))
	for i, b := range s.elems {
		out[i] = b.Vector()
	}
	return out
}

// SBinomial returns the S-vector of elements i and j, oriented under
// the set's order. Multiplying a binomial by a monomial leaves its
// difference vector unchanged, so the S-polynomial of two binomials
// collapses to the difference of their vectors. Equal elements yield
// the zero vector, which reduces to zero trivially.
func (s *Set) SBinomial(i, j int) []int {
	vi, vj := s.elems[i].v, s.elems[j].v
	v := make([]int, len(vi))
	for k := range v {
		v[k] = vi[k] - vj[k]
	}
	if s.ord.Sign(v) < 0 {
		negate(v)
	}
	return v
}

// HeadsDisjoint reports whether the head supports of elements i and j
// share no variable. Pairs with disjoint heads reduce to zero by the
// product criterion and can be discarded unprocessed.
func (s *Set) HeadsDisjoint(i, j int) bool {
	return s.elems[i].headSupp.Disjoint(s.elems[j].headSupp)
}

// LCMDegree returns the total degree of the least common multiple of
// the heads of elements i and j.
func (s *Set) LCMDegree(i, j int) int {
	vi, vj := s.elems[i].v, s.elems[j].v
	d := 0
	for k := range vi {
		hi, hj := pos(vi[k]), pos(vj[k])
		if hi > hj {
			d += hi
		} else {
			d += hj
		}
	}
	return d
}

// PairShift returns the monomial multiplier lcm(head_i, head_j) minus
// head_i: the shift element i is multiplied by when the pair (i, j) is
// formed.
func (s *Set) PairShift(i, j int) []int {
	vi, vj := s.elems[i].v, s.elems[j].v
	m := make([]int, len(vi))
	for k := range m {
		if d := pos(vj[k]) - pos(vi[k]); d > 0 {
			m[k] = d
		}
	}
	return m
}

// HeadExp returns a copy of the head exponent of element i.
func (s *Set) HeadExp(i int) []int {
	return positivePart(s.elems[i].v)
}

// Reduce computes the normal form of v against the set in place and
// reports whether v vanished. The head is rewritten until no element's
// head divides it, reorienting when a rewrite flips the leading side,
// then the tail is rewritten the same way. Tail rewrites never flip
// orientation and never reach zero.
func (s *Set) Reduce(v []int) bool {
	return s.reduce(v, -1, nil)
}

// ReduceFiltered is Reduce with a gate on reducers: element k may be
// used only when allow(k, shift) holds, where shift is the monomial
// multiplier the rewrite applies to element k. The signature-based
// variant passes the regularity check here.
func (s *Set) ReduceFiltered(v []int, allow func(k int, shift []int) bool) bool {
	return s.reduce(v, -1, allow)
}

func (s *Set) reduce(v []int, skip int, allow func(int, []int) bool) bool {
	if isZero(v) {
		return true
	}
	for {
		k := s.findReducer(v, 1, skip, allow)
		if k < 0 {
			break
		}
		sub(v, s.elems[k].v)
		if isZero(v) {
			return true
		}
		if s.ord.Sign(v) < 0 {
			negate(v)
		}
	}
	s.tailReduce(v, skip, allow)
	return false
}

// tailReduce rewrites the negative side of v until no head divides it.
// Each step strictly lowers the trailing monomial in the order, so the
// loop terminates; the head is untouched throughout.
func (s *Set) tailReduce(v []int, skip int, allow func(int, []int) bool) {
	for {
		k := s.findReducer(v, -1, skip, allow)
		if k < 0 {
			return
		}
		add(v, s.elems[k].v)
	}
}

// findReducer returns the first element whose head divides the side of
// v selected by sign (+1 head, -1 tail), or -1. The support subset test
// screens candidates before the componentwise comparison.
func (s *Set) findReducer(v []int, sign int, skip int, allow func(int, []int) bool) int {
	supp := supportOf(v, sign)
	for k, g := range s.elems {
		if k == skip {
			continue
		}
		if !g.headSupp.SubsetOf(supp) {
			continue
		}
		if !dividesSide(g.v, v, sign) {
			continue
		}
		if allow != nil && !allow(k, shiftSide(g.v, v, sign)) {
			continue
		}
		return k
	}
	return -1
}

// dividesSide reports whether the head of g divides the selected side
// of v.
func dividesSide(g, v []int, sign int) bool {
	for i, x := range g {
		if x > 0 && x > sign*v[i] {
			return false
		}
	}
	return true
}

// shiftSide returns the selected side of v minus the head of g, the
// multiplier of the rewrite step.
func shiftSide(g, v []int, sign int) []int {
	m := make([]int, len(v))
	for i := range v {
		m[i] = pos(sign*v[i]) - pos(g[i])
	}
	return m
}

// Minimalize removes every element whose head is divisible by another
// element's head, keeping the earlier element when heads are equal. The
// operation is idempotent and returns the number removed. Positions
// held by outstanding pairs are invalidated, so this runs only once the
// queue has drained.
func (s *Set) Minimalize() int {
	kept := s.elems[:0]
	removed := 0
	for i, bi := range s.elems {
		redundant := false
		for j, bj := range s.elems {
			if j == i || !bj.headDivides(bi.v) {
				continue
			}
			if bi.headDivides(bj.v) && j > i {
				continue
			}
			redundant = true
			break
		}
		if redundant {
			removed++
		} else {
			kept = append(kept, bi)
		}
	}
	s.elems = kept
	return removed
}

// Interreduce minimalizes and then replaces every tail by its normal
// form against the rest, yielding the reduced basis for the order.
// After Minimalize no head divides another, so heads cannot change.
func (s *Set) Interreduce() int {
	removed := s.Minimalize()
	s.InterreduceTails()
	return removed
}

// InterreduceTails rewrites only trailing monomials, keeping heads and
// element count fixed. Safe to run mid-loop: positions stored in
// outstanding pairs stay valid.
func (s *Set) InterreduceTails() {
	for i, b := range s.elems {
		s.tailReduce(b.v, i, nil)
		b.refresh()
	}
}

func pos(x int) int {
	if x > 0 {
		return x
	}
	return 0
}

func add(v, w []int) {
	for i := range v {
		v[i] += w[i]
	}
}

func sub(v, w []int) {
	for i := range v {
		v[i] -= w[i]
	}
}
