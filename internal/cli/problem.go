package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"

	"github.com/umonteiro/toric/pkg/fourti2"
	"github.com/umonteiro/toric/pkg/solver"
)

// =============================================================================
// Problem Loading
// =============================================================================

// problemFile is the TOML schema of a problem input:
//
//	[problem]
//	name   = "coins"
//	matrix = [[1, 5, 10, 25]]
//	rhs    = [63]
//	cost   = [[1, 1, 1, 1]]
type problemFile struct {
	Problem problemSpec `toml:"problem"`
}

type problemSpec struct {
	Name       string  `toml:"name"`
	Matrix     [][]int `toml:"matrix"`
	RHS        []int   `toml:"rhs"`
	Cost       [][]int `toml:"cost"`
	Upper      []int   `toml:"upper"`
	Generators [][]int `toml:"generators"`
}

// loadProblem reads a problem from path. A .toml file is decoded as a
// [problem] table; any other path is treated as the base name of a
// 4ti2-style project (the .mat suffix may be included or left off).
// The returned name identifies the problem in output.
func loadProblem(path string) (string, solver.Options, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return loadTOMLProblem(path)
	}
	return loadProjectProblem(path)
}

func loadTOMLProblem(path string) (string, solver.Options, error) {
	var f problemFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return "", solver.Options{}, fmt.Errorf("load %s: %w", path, err)
	}
	if len(f.Problem.Matrix) == 0 {
		return "", solver.Options{}, fmt.Errorf("load %s: missing problem matrix", path)
	}

	name := f.Problem.Name
	if name == "" {
		name = problemName(path)
	}
	return name, solver.Options{
		Matrix:     f.Problem.Matrix,
		RHS:        f.Problem.RHS,
		Cost:       f.Problem.Cost,
		Upper:      f.Problem.Upper,
		Generators: f.Problem.Generators,
	}, nil
}

func loadProjectProblem(path string) (string, solver.Options, error) {
	base := strings.TrimSuffix(path, fourti2.SuffixMatrix)
	p, err := fourti2.ReadProject(base)
	if err != nil {
		return "", solver.Options{}, err
	}
	return problemName(base), solver.Options{
		Matrix:     p.Matrix,
		RHS:        p.RHS,
		Cost:       p.Cost,
		Upper:      p.Upper,
		Generators: p.Generators,
	}, nil
}

// problemName derives a display name from an input path.
func problemName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parsePoint parses a lattice point given as comma- or space-separated
// integers, e.g. "63,0,0,0".
func parsePoint(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty point")
	}
	point := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid point entry %q", f)
		}
		point[i] = v
	}
	return point, nil
}

// =============================================================================
// Output Paths
// =============================================================================

// defaultOutput derives an output path from the problem input by
// swapping its extension, mirroring the 4ti2 project convention
// (coin -> coin.gro).
func defaultOutput(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path. An empty path or
// "-" means stdout; otherwise the file at path is created, overwriting
// if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeJSON writes v as indented JSON with a trailing newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
