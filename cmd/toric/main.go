package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/umonteiro/toric/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := newRoot(c).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // 128+SIGINT, the shell convention for interrupted runs
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRoot wires the --verbose flag into the CLI's log level. The flag
// value is only known once cobra has parsed the command line, so the
// level is raised in a pre-run hook chained before the root's own.
func newRoot(c *cli.CLI) *cobra.Command {
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	chained := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if chained != nil {
			return chained(cmd, args)
		}
		return nil
	}
	return root
}
