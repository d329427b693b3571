package gb

import (
	"github.com/umonteiro/toric/pkg/binomial"
)

// Algorithm is the variant contract of the completion loop. Every
// operation is required: a variant type that misses one simply does not
// satisfy the interface, so wiring mistakes surface at compile time.
//
// The loop guarantees the call pattern per dequeued pair:
// EliminateLate, then SBinomial, then Reduce, then exactly one of
// RecordZeroReduction or Update. Variants own their basis and queue
// exclusively for the duration of a run.
type Algorithm interface {
	// Name identifies the variant in logs and results.
	Name() string

	// Basis returns the live basis the variant extends.
	Basis() *binomial.Set

	// QueueLen returns the number of pairs still queued.
	QueueLen() int

	// NextPair dequeues the next pair to process, or nil when the
	// queue is empty, which terminates the run.
	NextPair() CriticalPair

	// EliminateLate reports whether the pair can be discarded without
	// reduction, by whatever criterion the variant trusts.
	EliminateLate(p CriticalPair) bool

	// SBinomial builds the pair's S-vector from the live basis,
	// oriented under the basis order.
	SBinomial(p CriticalPair) []int

	// Reduce computes the normal form of v in place against the live
	// basis, under whatever reducer discipline the variant requires,
	// and reports whether v vanished.
	Reduce(p CriticalPair, v []int) bool

	// Update appends the surviving vector to the basis and queues the
	// new pairs it spawns.
	Update(p CriticalPair, v []int)

	// RecordZeroReduction lets the variant learn from a pair whose
	// S-vector reduced to zero.
	RecordZeroReduction(p CriticalPair)

	// Stats returns the variant's own counters for the run so far.
	Stats() VariantStats
}

// VariantStats are counters maintained by a variant rather than the
// loop.
type VariantStats struct {
	// PairsCreated counts pairs ever queued, including later discards.
	PairsCreated int `json:"pairs_created"`

	// SingularSkips counts pairs dropped at creation because their
	// shifted signatures coincide. Zero for variants without
	// signatures.
	SingularSkips int `json:"singular_skips,omitempty"`

	// Syzygies counts the known syzygy signatures collected during the
	// run. Zero for variants without signatures.
	Syzygies int `json:"syzygies,omitempty"`
}
