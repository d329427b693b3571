package gb

import (
	"errors"

	"github.com/umonteiro/toric/pkg/binomial"
	"github.com/umonteiro/toric/pkg/order"
)

// Signature is the signature-based completion variant. Every basis
// element carries the module monomial it was derived from, pairs are
// processed in non-decreasing signature order, and two syzygy criteria
// prune the queue: pairs whose shifted signatures coincide are dropped
// at creation, and pairs whose signature is divisible by a known syzygy
// signature are dropped at dequeue. Known syzygies are the Koszul
// signatures registered when pairs are created plus the signatures of
// zero reductions. Reduction is regular: a reducer applies only when
// its shifted signature stays below the pair's.
type Signature struct {
	set   *binomial.Set
	sord  *order.SignatureOrder
	queue sigQueue
	sigs  []order.Signature
	syz   []order.Signature
	stats VariantStats
}

// NewSignature wraps a seeded basis, assigns each element its unit
// signature and queues the pairs among the elements. The Schreyer
// module order needs at least one generator to weight positions by.
func NewSignature(set *binomial.Set, kind order.ModuleOrder) (*Signature, error) {
	if set == nil {
		return nil, errors.New("gb: basis is required")
	}
	leads := make([][]int, set.Len())
	for i := range leads {
		leads[i] = set.HeadExp(i)
	}
	sord, err := order.NewSignatureOrder(set.Order(), kind, leads)
	if err != nil {
		return nil, err
	}
	a := &Signature{set: set, sord: sord}
	a.queue.ord = sord
	zero := make([]int, set.Order().Vars())
	a.sigs = make([]order.Signature, set.Len())
	for i := range a.sigs {
		a.sigs[i] = order.NewSignature(i, zero)
	}
	for j := 1; j < set.Len(); j++ {
		for i := 0; i < j; i++ {
			a.enqueue(i, j)
		}
	}
	return a, nil
}

// Name returns "signature".
func (a *Signature) Name() string { return "signature" }

// Basis returns the live basis.
func (a *Signature) Basis() *binomial.Set { return a.set }

// QueueLen returns the number of queued pairs.
func (a *Signature) QueueLen() int { return a.queue.Len() }

// NextPair pops the queued pair with the smallest signature.
func (a *Signature) NextPair() CriticalPair {
	p, ok := a.queue.pop()
	if !ok {
		return nil
	}
	return p
}

// EliminateLate drops the pair when a known syzygy signature divides
// its signature: the S-vector is then certain to reduce to zero.
func (a *Signature) EliminateLate(p CriticalPair) bool {
	sig := p.(SignaturePair).Signature()
	for _, s := range a.syz {
		if s.Divides(sig) {
			return true
		}
	}
	return false
}

// SBinomial builds the pair's oriented S-vector.
func (a *Signature) SBinomial(p CriticalPair) []int {
	return a.set.SBinomial(p.First(), p.Second())
}

// Reduce computes the regular normal form of v: reducers whose shifted
// signature would reach or pass the pair's signature are held back.
func (a *Signature) Reduce(p CriticalPair, v []int) bool {
	sig := p.(SignaturePair).Signature()
	return a.set.ReduceFiltered(v, func(k int, shift []int) bool {
		return a.sord.Compare(a.sigs[k].Mul(shift), sig) < 0
	})
}

// Update appends the reduced vector under the pair's signature and
// pairs it with every prior element.
func (a *Signature) Update(p CriticalPair, v []int) {
	sig := p.(SignaturePair).Signature()
	idx := a.set.Len()
	a.set.Append(binomial.MustNew(v, a.set.Order()))
	a.sigs = append(a.sigs, sig)
	for i := 0; i < idx; i++ {
		a.enqueue(i, idx)
	}
}

// RecordZeroReduction stores the pair's signature as a syzygy
// signature; later pairs it divides are eliminated unprocessed.
func (a *Signature) RecordZeroReduction(p CriticalPair) {
	a.syz = append(a.syz, p.(SignaturePair).Signature())
}

// Stats returns the variant counters.
func (a *Signature) Stats() VariantStats {
	st := a.stats
	st.Syzygies = len(a.syz)
	return st
}

// enqueue registers the pair's Koszul syzygy and queues the pair under
// the larger shifted signature. Pairs whose shifted signatures coincide
// are singular and skipped: their S-vector is covered at a strictly
// smaller signature.
func (a *Signature) enqueue(i, j int) {
	ki := a.sigs[j].Mul(a.set.HeadExp(i))
	kj := a.sigs[i].Mul(a.set.HeadExp(j))
	if a.sord.Compare(kj, ki) > 0 {
		ki = kj
	}
	a.syz = append(a.syz, ki)

	si := a.sigs[i].Mul(a.set.PairShift(i, j))
	sj := a.sigs[j].Mul(a.set.PairShift(j, i))
	c := a.sord.Compare(si, sj)
	if c == 0 {
		a.stats.SingularSkips++
		return
	}
	sig := si
	if c < 0 {
		sig = sj
	}
	a.queue.push(NewSignaturePair(i, j, sig))
	a.stats.PairsCreated++
}
