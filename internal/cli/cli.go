// Package cli implements the toric command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/umonteiro/toric/pkg/buildinfo"
	"github.com/umonteiro/toric/pkg/cache"
	"github.com/umonteiro/toric/pkg/solver"
)

// appName names the binary and the per-user cache directory.
const appName = "toric"

// Log levels accepted by SetLogLevel, re-exported so main does not
// import charmbracelet/log itself.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger
}

// New builds a CLI whose commands log to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel adjusts the log level after construction.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// verbose reports whether debug logging is enabled.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand assembles the toric command tree. The shared logger is
// attached to the command context so subcommands and the solver can
// pick it up.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "toric",
		Short: "Toric solves integer programs through lattice ideal Gröbner bases",
		Long: `Toric computes Gröbner bases of lattice ideals and uses them to solve
integer programs: a completed basis turns optimization into a walk that
rewrites any feasible point down to the cost-optimal one of its fiber.

Problems are read from TOML files or 4ti2-style project files and
completed bases are cached locally for reuse.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.solveCommand(),
		c.optimizeCommand(),
		c.fiberCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// newRunner builds a solver runner backed by the local basis cache, or
// by no cache at all when the user passed --no-cache.
func (c *CLI) newRunner(noCache bool) (*solver.Runner, error) {
	backend, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return solver.NewRunner(backend, nil, c.Logger), nil
}

// newCache picks the cache backend. A missing home directory degrades
// to the null cache rather than failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the basis cache directory, honoring XDG_CACHE_HOME
// and falling back to ~/.cache/toric.
func cacheDir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
