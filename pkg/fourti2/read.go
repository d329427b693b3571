package fourti2

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrBadHeader indicates a file that does not start with a valid
// "rows cols" dimension line.
var ErrBadHeader = errors.New("fourti2: malformed dimension header")

// Read parses a matrix from r. The header fixes the dimensions and the
// body must supply exactly rows*cols integer tokens; anything else is a
// descriptive error naming the offending token.
func Read(r io.Reader) ([][]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	rows, err := nextInt(sc, "row count")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	cols, err := nextInt(sc, "column count")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %d x %d", ErrBadHeader, rows, cols)
	}
	m := make([][]int, rows)
	for i := 0; i < rows; i++ {
		m[i] = make([]int, cols)
		for j := 0; j < cols; j++ {
			v, err := nextInt(sc, fmt.Sprintf("entry (%d,%d)", i, j))
			if err != nil {
				return nil, err
			}
			m[i][j] = v
		}
	}
	return m, nil
}

// ReadFile parses a matrix from the file at path.
func ReadFile(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return m, nil
}

// ReadVector parses a one-row matrix file and returns the row, for the
// .rhs and .ub file kinds.
func ReadVector(r io.Reader) ([]int, error) {
	m, err := Read(r)
	if err != nil {
		return nil, err
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("fourti2: want a single row, got %d", len(m))
	}
	return m[0], nil
}

func nextInt(sc *bufio.Scanner, what string) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("scan %s: %w", what, err)
		}
		return 0, fmt.Errorf("fourti2: missing %s", what)
	}
	v, err := strconv.Atoi(sc.Text())
	if err != nil {
		return 0, fmt.Errorf("fourti2: bad %s %q", what, sc.Text())
	}
	return v, nil
}
