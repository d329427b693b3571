package solver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/umonteiro/toric/pkg/binomial"
	"github.com/umonteiro/toric/pkg/cache"
	"github.com/umonteiro/toric/pkg/gb"
	"github.com/umonteiro/toric/pkg/ip"
	"github.com/umonteiro/toric/pkg/observability"
	"github.com/umonteiro/toric/pkg/order"
)

// Runner encapsulates completion runs with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete problem → generators → completion pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	prob, err := opts.Problem()
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}

	hash := opts.ProblemHash()
	key := r.Keyer.BasisKey(hash, opts.BasisKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "basis")
				cached.CacheHit = true
				r.Logger.Info("loaded cached basis",
					"algorithm", opts.Algorithm,
					"size", len(cached.Vectors))
				return &cached, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "basis")

	set, err := r.generators(prob, opts)
	if err != nil {
		return nil, fmt.Errorf("generators: %w", err)
	}
	alg, err := newAlgorithm(opts, set)
	if err != nil {
		return nil, fmt.Errorf("algorithm: %w", err)
	}

	run, err := gb.Run(ctx, prob, alg, gb.Config{
		AutoReduceFreq: opts.AutoReduceFreq,
		Debug:          opts.Debug,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	result := &Result{
		Vectors: run.Vectors,
		Stats:   run.Stats,
		Hash:    hash,
	}

	// Cache the result
	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLBasis); err == nil {
			observability.Cache().OnCacheSet(ctx, "basis", len(data))
		}
	}

	r.Logger.Info("computed basis",
		"algorithm", opts.Algorithm,
		"size", len(result.Vectors),
		"duration", run.Stats.Duration)

	return result, nil
}

// OptimizeResult contains the outcome of driving a point to its optimum.
type OptimizeResult struct {
	Basis   *Result `json:"basis"`
	Start   []int   `json:"start"`
	Optimum []int   `json:"optimum"`
	Steps   int     `json:"steps"`
	Cost    []int   `json:"cost,omitempty"`
}

// Optimize completes the basis and walks a feasible point to its normal
// form, which is the cost-optimal point of its fiber.
func (r *Runner) Optimize(ctx context.Context, opts Options, z []int) (*OptimizeResult, error) {
	res, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	prob, err := opts.Problem()
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}

	optimum, steps, err := prob.NormalFormWalk(z, res.Vectors)
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	out := &OptimizeResult{
		Basis:   res,
		Start:   append([]int(nil), z...),
		Optimum: optimum,
		Steps:   steps,
	}
	if len(prob.Costs()) > 0 {
		out.Cost = prob.Cost(optimum)
	}

	r.Logger.Info("optimized point",
		"steps", steps,
		"optimum", optimum)

	return out, nil
}

// FiberResult contains a fiber enumeration and its connectivity.
type FiberResult struct {
	Basis      *Result  `json:"basis"`
	Points     [][]int  `json:"points"`
	Edges      [][2]int `json:"edges"`
	Components int      `json:"components"`
	Connected  bool     `json:"connected"`

	// Graph is the underlying fiber graph for rendering.
	Graph *ip.FiberGraph `json:"-"`
}

// Fiber completes the basis, enumerates the right-hand side fiber and
// connects its points by basis moves. A non-positive limit uses
// DefaultFiberLimit.
func (r *Runner) Fiber(ctx context.Context, opts Options, limit int) (*FiberResult, error) {
	if limit <= 0 {
		limit = DefaultFiberLimit
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	prob, err := opts.Problem()
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}

	g, err := prob.FiberGraph(res.Vectors, limit)
	if err != nil {
		return nil, fmt.Errorf("fiber: %w", err)
	}

	out := &FiberResult{
		Basis:      res,
		Points:     g.Points,
		Edges:      g.Edges,
		Components: g.Components(),
		Connected:  g.Connected(),
		Graph:      g,
	}

	r.Logger.Info("enumerated fiber",
		"points", len(g.Points),
		"edges", len(g.Edges),
		"connected", out.Connected)

	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// generators builds the initial generating set, computing a lattice kernel
// basis when the options carry no explicit generators.
func (r *Runner) generators(prob *ip.Problem, opts Options) (*binomial.Set, error) {
	ord, err := prob.Order()
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}

	vecs := opts.Generators
	if len(vecs) == 0 {
		vecs = prob.LatticeBasis()
		r.Logger.Debug("computed lattice basis", "vectors", len(vecs))
	}

	set := binomial.NewSet(ord)
	for i, v := range vecs {
		if err := set.AppendVector(v); err != nil {
			return nil, fmt.Errorf("generator %d: %w", i, err)
		}
	}
	return set, nil
}

// newAlgorithm constructs the completion algorithm named by the options.
func newAlgorithm(opts Options, set *binomial.Set) (gb.Algorithm, error) {
	switch opts.Algorithm {
	case AlgorithmBuchberger:
		return gb.NewBuchberger(set)
	case AlgorithmSignature:
		kind, err := order.ParseModuleOrder(opts.ModuleOrder)
		if err != nil {
			return nil, err
		}
		return gb.NewSignature(set, kind)
	default:
		return nil, fmt.Errorf("invalid algorithm: %q", opts.Algorithm)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
