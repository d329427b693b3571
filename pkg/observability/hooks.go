// Package observability lets applications instrument completion runs
// and cache traffic without coupling the libraries to any metrics
// backend.
//
// Libraries emit events through the package-level registry. The
// registered hooks default to no-ops, so emitting is always safe:
//
//	observability.Solver().OnRunStart(ctx, "buchberger", generators, vars)
//
// An application that wants the events registers its own hooks once at
// startup:
//
//	observability.SetSolverHooks(&prometheusHooks{})
//
// Hooks observe a run but never influence it.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// SolverHooks receives events from completion runs.
type SolverHooks interface {
	// OnRunStart records the beginning of a run.
	OnRunStart(ctx context.Context, algorithm string, generators, variables int)

	// OnPairProcessed records loop progress after a pair was handled.
	OnPairProcessed(ctx context.Context, dequeued, queued, basisSize int)

	// OnRunComplete records the end of a run.
	OnRunComplete(ctx context.Context, algorithm string, basisSize int, duration time.Duration, err error)
}

// CacheHooks receives basis cache traffic. The keyType tag tells
// caches apart when several are active.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopSolverHooks ignores all solver events.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnRunStart(context.Context, string, int, int)                     {}
func (NoopSolverHooks) OnPairProcessed(context.Context, int, int, int)                   {}
func (NoopSolverHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// Registered hooks, one slot per category. Reset installs the no-op
// defaults before anything can read the slots.
var (
	solverReg atomic.Pointer[SolverHooks]
	cacheReg  atomic.Pointer[CacheHooks]
)

func init() {
	Reset()
}

// SetSolverHooks registers h for solver events. Nil is ignored.
func SetSolverHooks(h SolverHooks) {
	if h != nil {
		solverReg.Store(&h)
	}
}

// SetCacheHooks registers h for cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheReg.Store(&h)
	}
}

// Solver returns the registered solver hooks, never nil.
func Solver() SolverHooks {
	return *solverReg.Load()
}

// Cache returns the registered cache hooks, never nil.
func Cache() CacheHooks {
	return *cacheReg.Load()
}

// Reset restores the no-op defaults. Tests use it to detach hooks
// they registered.
func Reset() {
	var s SolverHooks = NoopSolverHooks{}
	var c CacheHooks = NoopCacheHooks{}
	solverReg.Store(&s)
	cacheReg.Store(&c)
}
