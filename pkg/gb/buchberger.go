package gb

import (
	"errors"

	"github.com/umonteiro/toric/pkg/binomial"
)

// Buchberger is the classic completion variant: pairs are processed in
// order of increasing head-lcm degree, the product criterion discards
// pairs with disjoint head supports at dequeue time, and reduction uses
// every available reducer.
type Buchberger struct {
	set   *binomial.Set
	queue degreeQueue
	stats VariantStats
}

// NewBuchberger wraps a seeded basis and queues the pairs among its
// elements. The variant takes ownership of the set for the run.
func NewBuchberger(set *binomial.Set) (*Buchberger, error) {
	if set == nil {
		return nil, errors.New("gb: basis is required")
	}
	a := &Buchberger{set: set}
	for j := 1; j < set.Len(); j++ {
		for i := 0; i < j; i++ {
			a.enqueue(i, j)
		}
	}
	return a, nil
}

// Name returns "buchberger".
func (a *Buchberger) Name() string { return "buchberger" }

// Basis returns the live basis.
func (a *Buchberger) Basis() *binomial.Set { return a.set }

// QueueLen returns the number of queued pairs.
func (a *Buchberger) QueueLen() int { return a.queue.Len() }

// NextPair pops the queued pair with the smallest head-lcm degree.
func (a *Buchberger) NextPair() CriticalPair {
	p, ok := a.queue.pop()
	if !ok {
		return nil
	}
	return p
}

// EliminateLate applies the product criterion: pairs whose heads share
// no variable have an S-vector that reduces to zero and are dropped.
func (a *Buchberger) EliminateLate(p CriticalPair) bool {
	return a.set.HeadsDisjoint(p.First(), p.Second())
}

// SBinomial builds the pair's oriented S-vector.
func (a *Buchberger) SBinomial(p CriticalPair) []int {
	return a.set.SBinomial(p.First(), p.Second())
}

// Reduce computes the full normal form of v against the basis.
func (a *Buchberger) Reduce(_ CriticalPair, v []int) bool {
	return a.set.Reduce(v)
}

// Update appends the reduced vector and pairs it with every prior
// element.
func (a *Buchberger) Update(_ CriticalPair, v []int) {
	idx := a.set.Len()
	a.set.Append(binomial.MustNew(v, a.set.Order()))
	for i := 0; i < idx; i++ {
		a.enqueue(i, idx)
	}
}

// RecordZeroReduction is a no-op: plain Buchberger learns nothing from
// zero reductions.
func (a *Buchberger) RecordZeroReduction(CriticalPair) {}

// Stats returns the variant counters.
func (a *Buchberger) Stats() VariantStats { return a.stats }

func (a *Buchberger) enqueue(i, j int) {
	a.queue.push(NewBasicPair(i, j), a.set.LCMDegree(i, j))
	a.stats.PairsCreated++
}
