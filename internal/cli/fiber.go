package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/umonteiro/toric/pkg/fourti2"
	"github.com/umonteiro/toric/pkg/render"
	"github.com/umonteiro/toric/pkg/solver"
)

// formatText prints a summary instead of writing an artifact.
const formatText = "text"

// fiberCommand creates the fiber command for enumerating fibers.
func (c *CLI) fiberCommand() *cobra.Command {
	var (
		run    runOpts
		limit  int
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "fiber <problem>",
		Short: "Enumerate a fiber and render its exchange graph",
		Long: `Enumerate all feasible points sharing the problem's right-hand side
and connect them by Gröbner basis moves.

With a completed basis the graph is connected, which is what lets the
optimization walk reach the optimum from any start point. The graph can
be written as DOT, SVG or PNG with the optimum highlighted, as JSON, or
as a plain 4ti2 point list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run.validate(); err != nil {
				return err
			}
			if err := validateFiberFormat(format); err != nil {
				return err
			}
			return c.runFiber(cmd.Context(), args[0], run, limit, output, format)
		},
	}

	run.addRunFlags(cmd)
	cmd.Flags().IntVar(&limit, "limit", solver.DefaultFiberLimit, "abort enumeration past this many points")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout, default <problem>.<format>)`)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, 4ti2, json, dot, svg, png")

	return cmd
}

// runFiber completes the basis, enumerates the fiber and reports its
// connectivity.
func (c *CLI) runFiber(ctx context.Context, input string, run runOpts, limit int, output, format string) error {
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

	sp := startSpinner(ctx, fmt.Sprintf("Enumerating the fiber of %s...", name))
	res, err := runner.Fiber(ctx, opts, limit)
	sp.stop()
	if err != nil {
		printError("Fiber enumeration failed")
		return fmt.Errorf("fiber %s: %w", name, err)
	}

	printSuccess("Enumerated the fiber of %s", name)
	printStats(len(res.Basis.Vectors), res.Basis.Stats.Dequeued, res.Basis.Stats.Duration, res.Basis.CacheHit)
	printNewline()
	printKeyValue("points", strconv.Itoa(len(res.Points)))
	printKeyValue("edges", strconv.Itoa(len(res.Edges)))
	printKeyValue("components", strconv.Itoa(res.Components))
	printKeyValue("connected", strconv.FormatBool(res.Connected))
	if !res.Connected {
		printWarning("Fiber is disconnected; the basis moves do not link every point")
	}

	if format == formatText && output == "" {
		return nil
	}
	if output == "" {
		output = defaultOutput(input, fiberExt(format))
	}
	if err := c.writeFiber(ctx, opts, res, output, format); err != nil {
		return fmt.Errorf("write fiber: %w", err)
	}
	if output != "-" {
		printFile(output)
	}
	return nil
}

// validateFiberFormat checks the fiber output format flag.
func validateFiberFormat(f string) error {
	switch f {
	case formatText, formatFourTi2, formatJSON:
		return nil
	}
	_, err := render.ParseFormat(f)
	return err
}

// fiberExt maps a fiber format to a file extension.
func fiberExt(format string) string {
	switch format {
	case formatText, formatFourTi2:
		return "fib"
	}
	return format
}

// writeFiber writes the enumerated fiber to path in the given format.
func (c *CLI) writeFiber(ctx context.Context, opts solver.Options, res *solver.FiberResult, path, format string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case formatText, formatFourTi2:
		return fourti2.Write(out, res.Points)
	case formatJSON:
		return writeJSON(out, res)
	}

	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	dot := res.Graph.DOT(c.optimumIndex(opts, res))
	data, err := render.Render(ctx, []byte(dot), f)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// optimumIndex locates the fiber's optimal point by walking the first
// point to its normal form. It returns -1 when the fiber is empty or
// the walk cannot run.
func (c *CLI) optimumIndex(opts solver.Options, res *solver.FiberResult) int {
	if len(res.Points) == 0 {
		return -1
	}
	prob, err := opts.Problem()
	if err != nil {
		return -1
	}
	optimum, _, err := prob.NormalFormWalk(res.Points[0], res.Basis.Vectors)
	if err != nil {
		c.Logger.Debug("optimum walk failed", "error", err)
		return -1
	}
	return slices.IndexFunc(res.Points, func(p []int) bool {
		return slices.Equal(p, optimum)
	})
}
