package fourti2

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/umonteiro/toric/pkg/binomial"
)

// Write renders the matrix in the dimension-header convention.
func Write(w io.Writer, m [][]int) error {
	bw := bufio.NewWriter(w)
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	fmt.Fprintf(bw, "%d %d\n", len(m), cols)
	for _, row := range m {
		for j, x := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", x)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}
	return nil
}

// WriteFile renders the matrix into the file at path.
func WriteFile(path string, m [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Form converts a basis set into its matrix form: one oriented
// difference vector per row, in element order.
func Form(set *binomial.Set) [][]int {
	return set.Vectors()
}
