// Package solver provides the completion pipeline for toric.
//
// This package wraps the gb driver with problem construction, caching and
// result serialization so CLI and API components share one code path. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Problem: Validate the integer program and build its monomial order
//  2. Generators: Use explicit lattice vectors or compute a kernel basis
//  3. Completion: Run the configured algorithm to a reduced basis
//
// Completed bases are cached under a content hash of the problem data and
// the options that influence the result.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := solver.NewRunner(cache, nil, logger)
//	opts := solver.Options{
//	    Matrix:    [][]int{{1, 1, 1, 1}, {0, 1, 2, 3}},
//	    Algorithm: solver.AlgorithmBuchberger,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Vectors)
package solver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/umonteiro/toric/pkg/cache"
	"github.com/umonteiro/toric/pkg/gb"
	"github.com/umonteiro/toric/pkg/ip"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultAlgorithm is the completion algorithm used when none is named.
	DefaultAlgorithm = AlgorithmBuchberger

	// DefaultModuleOrder is the module order for signature runs.
	DefaultModuleOrder = "pot"

	// DefaultFiberLimit caps fiber enumeration to keep runs bounded.
	DefaultFiberLimit = 10000
)

// DefaultAutoReduceFreq is the in-loop interreduction frequency. It matches
// gb.DefaultAutoReduceFreq so CLI and API agree with direct driver use.
const DefaultAutoReduceFreq = gb.DefaultAutoReduceFreq

// Algorithm name constants.
const (
	AlgorithmBuchberger = "buchberger"
	AlgorithmSignature  = "signature"
)

// ValidAlgorithms is the set of supported completion algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmBuchberger: true,
	AlgorithmSignature:  true,
}

// ValidModuleOrders is the set of supported signature module orders.
var ValidModuleOrders = map[string]bool{
	"pot":      true,
	"top":      true,
	"schreyer": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a completion run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Problem definition
	Matrix     [][]int `json:"matrix"`
	RHS        []int   `json:"rhs,omitempty"`
	Cost       [][]int `json:"cost,omitempty"`
	Upper      []int   `json:"upper,omitempty"`
	Generators [][]int `json:"generators,omitempty"` // lattice vectors; kernel basis when empty

	// Completion options
	Algorithm      string `json:"algorithm,omitempty"`
	ModuleOrder    string `json:"module_order,omitempty"` // signature runs only
	AutoReduceFreq int    `json:"auto_reduce_freq,omitempty"`
	Refresh        bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" bson:"-"`
	Debug  bool        `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-" bson:"-"`
}

// Result contains the outputs of a completion run.
type Result struct {
	// Vectors is the reduced basis in sorted vector order.
	Vectors [][]int `json:"vectors"`

	// Stats contains driver counters and timing.
	Stats gb.Stats `json:"stats"`

	// Hash is the content hash of the problem data.
	Hash string `json:"hash"`

	// CacheHit reports whether the result came from cache.
	CacheHit bool `json:"cache_hit"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateAlgorithm checks that an algorithm name is valid.
func ValidateAlgorithm(name string) error {
	if !ValidAlgorithms[name] {
		return fmt.Errorf("invalid algorithm: %q (must be one of: buchberger, signature)", name)
	}
	return nil
}

// ValidateModuleOrder checks that a module order name is valid.
func ValidateModuleOrder(name string) error {
	if !ValidModuleOrders[name] {
		return fmt.Errorf("invalid module_order: %q (must be one of: pot, top, schreyer)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for a run.
// This method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateProblem(); err != nil {
		return err
	}
	if err := o.ValidateForRun(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateProblem checks required problem fields.
func (o *Options) ValidateProblem() error {
	if len(o.Matrix) == 0 {
		return fmt.Errorf("matrix is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRunDefaults sets default values for the completion run.
// AutoReduceFreq zero means "use the default"; a negative value disables
// in-loop interreduction.
func (o *Options) SetRunDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Algorithm == AlgorithmSignature && o.ModuleOrder == "" {
		o.ModuleOrder = DefaultModuleOrder
	}
	if o.AutoReduceFreq == 0 {
		o.AutoReduceFreq = DefaultAutoReduceFreq
	}
	if o.AutoReduceFreq < 0 {
		o.AutoReduceFreq = 0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRun validates and sets defaults for the completion run.
func (o *Options) ValidateForRun() error {
	o.SetRunDefaults()
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if o.Algorithm == AlgorithmSignature {
		return ValidateModuleOrder(o.ModuleOrder)
	}
	return nil
}

// IsSignature returns true if this run uses the signature algorithm.
func (o *Options) IsSignature() bool {
	return o.Algorithm == AlgorithmSignature
}

// Problem builds the integer program described by the options.
func (o *Options) Problem() (*ip.Problem, error) {
	return ip.New(o.Matrix, o.RHS, o.Cost, o.Upper)
}

// ProblemHash returns the content hash identifying the problem data.
func (o *Options) ProblemHash() string {
	content := struct {
		Matrix     [][]int `json:"matrix"`
		RHS        []int   `json:"rhs"`
		Cost       [][]int `json:"cost"`
		Upper      []int   `json:"upper"`
		Generators [][]int `json:"generators"`
	}{o.Matrix, o.RHS, o.Cost, o.Upper, o.Generators}
	data, _ := json.Marshal(content)
	return cache.Hash(data)
}

// BasisKeyOpts returns cache key options for the completion run. The
// auto-reduce frequency is deliberately absent: it changes how the
// basis is computed, never what comes out.
func (o *Options) BasisKeyOpts() cache.BasisKeyOpts {
	return cache.BasisKeyOpts{
		Algorithm:   o.Algorithm,
		ModuleOrder: o.ModuleOrder,
	}
}
