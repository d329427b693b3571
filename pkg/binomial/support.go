package binomial

import "math/bits"

const wordBits = 64

// Support is a bitset over variable indexes, used to prune divisibility
// and disjointness tests before the componentwise comparisons run. A
// word array keeps the common checks to a handful of AND/OR
// instructions.
type Support struct {
	words []uint64
}

// NewSupport allocates a support set able to hold n variable indexes.
func NewSupport(n int) Support {
	return Support{words: make([]uint64, (n+wordBits-1)/wordBits)}
}

// supportOf collects the indexes where sign*v[i] > 0: the head support
// for sign=+1 and the tail support for sign=-1.
func supportOf(v []int, sign int) Support {
	s := NewSupport(len(v))
	for i, x := range v {
		if sign*x > 0 {
			s.Set(i)
		}
	}
	return s
}

// Set marks index i.
func (s Support) Set(i int) {
	s.words[i/wordBits] |= 1 << (i % wordBits)
}

// Has reports whether index i is marked.
func (s Support) Has(i int) bool {
	return s.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// Disjoint reports whether s and t share no index.
func (s Support) Disjoint(t Support) bool {
	for w, x := range s.words {
		if x&t.words[w] != 0 {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every index of s is marked in t.
func (s Support) SubsetOf(t Support) bool {
	for w, x := range s.words {
		if x&^t.words[w] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of marked indexes.
func (s Support) Count() int {
	c := 0
	for _, x := range s.words {
		c += bits.OnesCount64(x)
	}
	return c
}
