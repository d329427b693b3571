package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// optimizeCommand creates the optimize command for walking a point to
// its fiber optimum.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		run   runOpts
		point string
	)

	cmd := &cobra.Command{
		Use:   "optimize <problem>",
		Short: "Walk a feasible point to the optimum of its fiber",
		Long: `Walk a feasible point to the cost-optimal point of its fiber.

The problem's Gröbner basis is completed (or loaded from cache), then
the point is rewritten step by step with basis moves until no move
improves it further. The end point is the unique optimum among all
points sharing the start's right-hand side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run.validate(); err != nil {
				return err
			}
			z, err := parsePoint(point)
			if err != nil {
				return err
			}
			return c.runOptimize(cmd.Context(), args[0], run, z)
		},
	}

	run.addRunFlags(cmd)
	cmd.Flags().StringVarP(&point, "point", "p", "", "feasible start point, e.g. \"63,0,0,0\"")
	_ = cmd.MarkFlagRequired("point")

	return cmd
}

// runOptimize completes the basis and drives the point to its optimum.
func (c *CLI) runOptimize(ctx context.Context, input string, run runOpts, z []int) error {
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

	sp := startSpinner(ctx, fmt.Sprintf("Optimizing %s...", fmtVector(z)))
	res, err := runner.Optimize(ctx, opts, z)
	sp.stop()
	if err != nil {
		printError("Optimization failed")
		return fmt.Errorf("optimize %s: %w", name, err)
	}

	printSuccess("Reached the optimum of the fiber in %d steps", res.Steps)
	printStats(len(res.Basis.Vectors), res.Basis.Stats.Dequeued, res.Basis.Stats.Duration, res.Basis.CacheHit)
	printNewline()
	printKeyValue("start", fmtVector(res.Start))
	printKeyValue("optimum", fmtVector(res.Optimum))
	if len(res.Cost) == 1 {
		printKeyValue("cost", strconv.Itoa(res.Cost[0]))
	} else if len(res.Cost) > 1 {
		printKeyValue("cost", fmtVector(res.Cost))
	}
	return nil
}
