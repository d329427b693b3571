// Package gb implements the completion loop that turns a generating
// set of difference vectors into a Gröbner basis, together with the
// critical-pair bookkeeping and the two algorithm variants that drive
// it: classic Buchberger pair selection and signature-based selection.
//
// The loop itself is algorithm-agnostic: it dequeues critical pairs,
// applies the variant's late elimination, builds and reduces the
// S-vector, and either grows the basis or records a zero reduction.
// Everything variant-specific sits behind the Algorithm interface; a
// variant that misses an operation does not compile.
package gb

import (
	"fmt"

	"github.com/umonteiro/toric/pkg/order"
)

// CriticalPair is a pair of basis positions whose S-vector the loop
// still has to consider. The two positions always differ and stay valid
// while the loop runs, because the basis only grows until the queue
// drains. The interface is sealed: the known implementations are
// BasicPair and SignaturePair, and adding another is a change to this
// package.
type CriticalPair interface {
	// First returns the smaller basis position.
	First() int
	// Second returns the larger basis position.
	Second() int

	sealed()
}

// BasicPair is a critical pair carrying nothing but its positions.
type BasicPair struct {
	first  int
	second int
}

// NewBasicPair builds a pair from two distinct positions, normalized
// to First < Second. It panics on equal positions; pairing an element
// with itself is a bug in the caller, never valid input.
func NewBasicPair(i, j int) BasicPair {
	if i == j {
		panic(fmt.Sprintf("gb: critical pair with equal positions %d", i))
	}
	if i > j {
		i, j = j, i
	}
	return BasicPair{first: i, second: j}
}

// First returns the smaller position.
func (p BasicPair) First() int { return p.first }

// Second returns the larger position.
func (p BasicPair) Second() int { return p.second }

func (BasicPair) sealed() {}

// SignaturePair is a critical pair annotated with the signature that
// orders its processing. The signature is selection metadata only; the
// S-vector and its reduction are position-driven exactly as for a
// BasicPair.
type SignaturePair struct {
	BasicPair
	sig order.Signature
}

// NewSignaturePair builds a signature-annotated pair.
func NewSignaturePair(i, j int, sig order.Signature) SignaturePair {
	return SignaturePair{BasicPair: NewBasicPair(i, j), sig: sig}
}

// Signature returns the pair's processing signature.
func (p SignaturePair) Signature() order.Signature { return p.sig }
