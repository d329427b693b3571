// Package pkg provides the core libraries for toric integer programming.
//
// # Overview
//
// Toric computes Gröbner bases for the lattice ideal of an integer
// program
//
//	min C·x   s.t.   A·x = b,  0 ≤ x ≤ u,  x ∈ Z^n
//
// and applies them: a completed basis is a test set that rewrites any
// feasible point down to the cost-optimal point of its fiber. The pkg
// directory is organized into three main areas:
//
//  1. Domain - integer programs, monomial orders, binomials ([ip], [order], [binomial])
//  2. Engine - critical pair completion ([gb])
//  3. Services - orchestration, caching, HTTP jobs ([solver], [cache], [api])
//
// # Architecture
//
// The typical data flow through toric:
//
//	Problem (A, b, C, u)
//	         ↓
//	    [ip] package (validation, monomial order, lattice kernel basis)
//	         ↓
//	    [gb] package (Buchberger or signature completion)
//	         ↓
//	    [binomial] package (reduction, minimalization, interreduction)
//	         ↓
//	    4ti2/JSON output, normal-form walks, fiber graphs
//
// # Quick Start
//
// Complete a basis and optimize a point:
//
//	import (
//	    "context"
//	    "github.com/umonteiro/toric/pkg/cache"
//	    "github.com/umonteiro/toric/pkg/solver"
//	)
//
//	// 1. Describe the problem
//	opts := solver.Options{
//	    Matrix: [][]int{{1, 5, 10, 25}},
//	    RHS:    []int{63},
//	    Cost:   [][]int{{1, 1, 1, 1}},
//	}
//
//	// 2. Complete the basis
//	runner := solver.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := runner.Execute(context.Background(), opts)
//
//	// 3. Walk a feasible point to the optimum
//	out, _ := runner.Optimize(context.Background(), opts, []int{63, 0, 0, 0})
//	fmt.Println(out.Optimum) // [3 0 1 2]
//
// # Main Packages
//
// ## Domain
//
// [ip] - Integer program model. Validates (A, b, C, u), builds the run's
// monomial order from the cost rows, computes an integer kernel basis of
// A by Hermite normal form, applies the truncation feasibility filter,
// walks points to their normal form and enumerates fiber graphs.
//
// [order] - Weight-matrix monomial orders (lex, grevlex, cost-weighted)
// and module monomial orders (position-over-term, term-over-position,
// Schreyer) with their signature comparisons.
//
// [binomial] - Exponent-vector binomials with cached support bitsets,
// and the basis set: S-binomial construction, normal-form reduction,
// minimalization and interreduction.
//
// ## Engine
//
// [gb] - The completion driver and its two algorithms. Buchberger orders
// pairs by lcm degree and prunes by disjoint head support; the signature
// variant orders pairs by module signature and prunes by syzygy
// divisibility. Both share one driver loop.
//
// ## Services
//
// [solver] - Orchestration runner (problem → cache → engine → result),
// the single entry point shared by CLI, API and tests.
//
// [cache] - Completed basis cache with file, Redis and null backends
// keyed by problem content hashes.
//
// [api] - HTTP job service: submit completion jobs, poll status, fetch
// bases. Job stores in memory or MongoDB.
//
// [fourti2] - Matrix file I/O in the 4ti2 convention (.mat, .rhs, .cost,
// .ub, .lat, .gro files with a "rows cols" header line).
//
// [render] - Fiber graph rendering: DOT passthrough plus SVG and PNG
// through Graphviz.
//
// [observability] - Optional hooks into solver and cache events, no-op
// by default.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/gb/...     # Specific package
//	go test -run Example     # Examples only
//
// [ip]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/ip
// [order]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/order
// [binomial]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/binomial
// [gb]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/gb
// [solver]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/solver
// [cache]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/cache
// [api]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/api
// [fourti2]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/fourti2
// [render]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/render
// [observability]: https://pkg.go.dev/github.com/umonteiro/toric/pkg/observability
package pkg
