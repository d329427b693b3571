package fourti2

import (
	"fmt"
	"os"
)

// File kind suffixes of the 4ti2 project convention.
const (
	SuffixMatrix  = ".mat"
	SuffixRHS     = ".rhs"
	SuffixCost    = ".cost"
	SuffixUpper   = ".ub"
	SuffixLattice = ".lat"
	SuffixBasis   = ".gro"
)

// Project holds the problem data read from the files sharing one base
// name. Only the matrix is mandatory; absent companion files leave
// their fields nil.
type Project struct {
	Matrix     [][]int
	RHS        []int
	Cost       [][]int
	Upper      []int
	Generators [][]int
}

// ReadProject loads base+".mat" and any optional companion files
// (.rhs, .cost, .ub, .lat) into a Project.
func ReadProject(base string) (*Project, error) {
	p := &Project{}

	var err error
	p.Matrix, err = ReadFile(base + SuffixMatrix)
	if err != nil {
		return nil, err
	}

	if p.RHS, err = readOptionalVector(base + SuffixRHS); err != nil {
		return nil, err
	}
	if p.Cost, err = readOptionalMatrix(base + SuffixCost); err != nil {
		return nil, err
	}
	if p.Upper, err = readOptionalVector(base + SuffixUpper); err != nil {
		return nil, err
	}
	if p.Generators, err = readOptionalMatrix(base + SuffixLattice); err != nil {
		return nil, err
	}
	return p, nil
}

func readOptionalMatrix(path string) ([][]int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return ReadFile(path)
}

func readOptionalVector(path string) ([]int, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	v, err := ReadVector(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v, nil
}
