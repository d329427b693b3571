package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/umonteiro/toric/pkg/fourti2"
	"github.com/umonteiro/toric/pkg/solver"
)

// Basis output format names.
const (
	formatFourTi2 = "4ti2"
	formatJSON    = "json"
)

// =============================================================================
// Shared Completion Flags
// =============================================================================

// runOpts holds the completion flags shared by solve, optimize and fiber.
type runOpts struct {
	algorithm   string
	moduleOrder string
	autoReduce  int
	noCache     bool
	refresh     bool
}

// addRunFlags registers the shared completion flags on cmd.
func (o *runOpts) addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", solver.DefaultAlgorithm, "completion algorithm: buchberger, signature")
	cmd.Flags().StringVar(&o.moduleOrder, "module-order", solver.DefaultModuleOrder, "module order for signature runs: pot, top, schreyer")
	cmd.Flags().IntVar(&o.autoReduce, "auto-reduce", 0, "interreduce every N accepted vectors (0 = default, negative = off)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the basis cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even when a cached basis exists")
}

// validate checks the algorithm flags before a run starts.
func (o *runOpts) validate() error {
	if err := solver.ValidateAlgorithm(o.algorithm); err != nil {
		return err
	}
	if o.algorithm == solver.AlgorithmSignature {
		return solver.ValidateModuleOrder(o.moduleOrder)
	}
	return nil
}

// apply copies the flags onto solver options.
func (o *runOpts) apply(opts *solver.Options) {
	opts.Algorithm = o.algorithm
	opts.ModuleOrder = o.moduleOrder
	opts.AutoReduceFreq = o.autoReduce
	opts.Refresh = o.refresh
}

// =============================================================================
// Solve Command
// =============================================================================

// solveCommand creates the solve command for completing a basis.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		run      runOpts
		output   string
		format   string
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "solve <problem>",
		Short: "Complete the Gröbner basis of a problem",
		Long: `Complete the Gröbner basis of a lattice ideal.

The problem is read from a TOML file with a [problem] table or from a
4ti2-style project (pass the base name or the .mat file). Without
explicit generators, a lattice kernel basis of the matrix is computed
first.

The resulting basis is written next to the input with a .gro suffix
unless --output names a different destination ("-" for stdout).
Completed bases are cached under ~/.cache/toric for reuse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run.validate(); err != nil {
				return err
			}
			if err := validateBasisFormat(format); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], run, output, format, progress)
		},
	}

	run.addRunFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout, default <problem>.gro)`)
	cmd.Flags().StringVarP(&format, "format", "f", formatFourTi2, "output format: 4ti2, json")
	cmd.Flags().BoolVar(&progress, "progress", false, "show a live progress display (needs a TTY)")

	return cmd
}

// runSolve loads the problem, completes its basis and writes the result.
func (c *CLI) runSolve(ctx context.Context, input string, run runOpts, output, format string, progress bool) error {
	name, opts, err := loadProblem(input)
	if err != nil {
		return err
	}
	run.apply(&opts)
	opts.Debug = c.verbose()

	runner, err := c.newRunner(run.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.executeRun(ctx, name, runner, opts, progress)
	if err != nil {
		return fmt.Errorf("solve %s: %w", name, err)
	}

	if res.CacheHit {
		printSuccess("Loaded cached basis for %s", name)
	} else {
		printSuccess("Completed basis for %s", name)
	}
	printStats(len(res.Vectors), res.Stats.Dequeued, res.Stats.Duration, res.CacheHit)

	if output == "" {
		output = defaultOutput(input, outputExt(format))
	}
	if err := writeBasis(res, output, format); err != nil {
		return fmt.Errorf("write basis: %w", err)
	}
	if output != "-" {
		printFile(output)
	}
	printNextStep("Walk a point to its optimum", fmt.Sprintf("toric optimize %s --point <z>", input))
	return nil
}

// executeRun performs the completion with the appropriate progress UI:
// the live display when requested, plain log lines when verbose (a
// spinner would fight the log output), and a spinner otherwise.
func (c *CLI) executeRun(ctx context.Context, name string, runner *solver.Runner, opts solver.Options, progress bool) (*solver.Result, error) {
	if progress {
		// Keep log lines off the display.
		runner.Logger = newLogger(io.Discard, LogInfo)
		opts.Logger = runner.Logger

		var res *solver.Result
		err := c.runWithProgress(ctx, name, opts.Algorithm, func(ctx context.Context) error {
			var rerr error
			res, rerr = runner.Execute(ctx, opts)
			return rerr
		})
		return res, err
	}

	if c.verbose() {
		prog := newProgress(c.Logger)
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			return nil, err
		}
		prog.done(fmt.Sprintf("Completed basis with %d vectors", len(res.Vectors)))
		return res, nil
	}

	sp := startSpinner(ctx, fmt.Sprintf("Completing %s...", name))
	res, err := runner.Execute(ctx, opts)
	sp.stop()
	if err != nil {
		printError("Completion failed")
		return nil, err
	}
	return res, nil
}

// =============================================================================
// Basis Output
// =============================================================================

// validateBasisFormat checks the solve output format flag.
func validateBasisFormat(f string) error {
	switch f {
	case formatFourTi2, formatJSON:
		return nil
	}
	return fmt.Errorf("invalid format: %q (must be one of: 4ti2, json)", f)
}

// outputExt maps a format name to a file extension.
func outputExt(format string) string {
	if format == formatFourTi2 {
		return "gro"
	}
	return format
}

// writeBasis writes the completed basis to path in the given format.
func writeBasis(res *solver.Result, path, format string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case formatFourTi2:
		return fourti2.Write(out, res.Vectors)
	case formatJSON:
		return writeJSON(out, res)
	}
	return fmt.Errorf("unknown format: %q", format)
}
