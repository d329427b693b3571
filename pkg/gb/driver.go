package gb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/umonteiro/toric/pkg/ip"
	"github.com/umonteiro/toric/pkg/observability"
)

// Stats are the loop counters of a completed run.
type Stats struct {
	// Dequeued counts pairs taken off the queue.
	Dequeued int `json:"dequeued"`

	// Eliminated counts pairs discarded by the variant's late
	// criterion.
	Eliminated int `json:"eliminated"`

	// Truncated counts pairs whose S-vector failed the feasibility
	// test.
	Truncated int `json:"truncated"`

	// ZeroReductions counts S-vectors that reduced to zero.
	ZeroReductions int `json:"zero_reductions"`

	// Accepted counts basis extensions.
	Accepted int `json:"accepted"`

	// AutoReductions counts in-loop tail interreductions.
	AutoReductions int `json:"auto_reductions"`

	// Removed counts elements dropped by the final minimalization.
	Removed int `json:"removed"`

	// BasisSize is the size of the reduced basis.
	BasisSize int `json:"basis_size"`

	// Variant collects the algorithm's own counters.
	Variant VariantStats `json:"variant"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// Result is the outcome of a run: the reduced basis as oriented
// difference vectors in a deterministic order, plus the counters.
type Result struct {
	Vectors [][]int `json:"vectors"`
	Stats   Stats   `json:"stats"`
}

// Run drives the completion loop to exhaustion and returns the reduced
// basis. The loop dequeues a pair, gives the variant a chance to
// discard it, builds the S-vector, drops it if the problem's truncation
// test rejects it, reduces it, and then either records a zero reduction
// or extends the basis. When the queue drains, the basis is minimalized
// and interreduced, which makes the output unique for the order.
//
// Every AutoReduceFreq accepted extensions the basis tails are
// interreduced in place; heads and positions never change mid-loop, so
// queued pairs stay valid. Cancellation is checked once per pair.
func Run(ctx context.Context, prob *ip.Problem, alg Algorithm, cfg Config) (*Result, error) {
	if prob == nil {
		return nil, errors.New("gb: problem is required")
	}
	if alg == nil {
		return nil, errors.New("gb: algorithm is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	start := time.Now()
	hooks := observability.Solver()
	set := alg.Basis()
	hooks.OnRunStart(ctx, alg.Name(), set.Len(), set.Order().Vars())
	if cfg.Debug {
		cfg.Logger.Debug("completion started",
			"algorithm", alg.Name(),
			"generators", set.Len(),
			"variables", set.Order().Vars(),
			"queued", alg.QueueLen())
	}

	var st Stats
	for {
		if err := ctx.Err(); err != nil {
			hooks.OnRunComplete(ctx, alg.Name(), set.Len(), time.Since(start), err)
			return nil, fmt.Errorf("gb: run canceled: %w", err)
		}
		p := alg.NextPair()
		if p == nil {
			break
		}
		st.Dequeued++
		hooks.OnPairProcessed(ctx, st.Dequeued, alg.QueueLen(), set.Len())
		if alg.EliminateLate(p) {
			st.Eliminated++
			if cfg.Debug {
				cfg.Logger.Debug("pair eliminated", "first", p.First(), "second", p.Second())
			}
			continue
		}
		v := alg.SBinomial(p)
		if !prob.Feasible(v) {
			st.Truncated++
			if cfg.Debug {
				cfg.Logger.Debug("pair truncated", "first", p.First(), "second", p.Second())
			}
			continue
		}
		if alg.Reduce(p, v) {
			st.ZeroReductions++
			alg.RecordZeroReduction(p)
			if cfg.Debug {
				cfg.Logger.Debug("pair reduced to zero", "first", p.First(), "second", p.Second())
			}
			continue
		}
		alg.Update(p, v)
		st.Accepted++
		if cfg.Debug {
			cfg.Logger.Debug("basis extended",
				"first", p.First(),
				"second", p.Second(),
				"size", set.Len(),
				"queued", alg.QueueLen())
		}
		if cfg.AutoReduceFreq > 0 && st.Accepted%cfg.AutoReduceFreq == 0 {
			set.InterreduceTails()
			st.AutoReductions++
		}
	}

	st.Removed = set.Interreduce()
	vecs := set.Vectors()
	sortVectors(vecs)
	st.BasisSize = len(vecs)
	st.Variant = alg.Stats()
	st.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, alg.Name(), st.BasisSize, st.Duration, nil)
	if cfg.Debug {
		cfg.Logger.Debug("completion finished",
			"basis", st.BasisSize,
			"dequeued", st.Dequeued,
			"zero_reductions", st.ZeroReductions,
			"duration", st.Duration)
	}
	return &Result{Vectors: vecs, Stats: st}, nil
}

// sortVectors orders vectors lexicographically by entry so results are
// comparable across variants and runs.
func sortVectors(vecs [][]int) {
	sort.Slice(vecs, func(a, b int) bool {
		va, vb := vecs[a], vecs[b]
		for k := range va {
			if va[k] != vb[k] {
				return va[k] < vb[k]
			}
		}
		return false
	})
}
