// Package fourti2 reads and writes integer matrices in the whitespace
// file convention of the 4ti2 tool family.
//
// # File Format
//
// The first line holds the matrix dimensions, rows then columns, and
// every following line holds one row of integers:
//
//	2 4
//	1 1 1 1
//	0 1 2 3
//
// Any whitespace separates tokens, so padded columns and trailing
// newlines are fine. The convention is shared across the related file
// kinds in a project directory:
//
//   - name.mat  constraint matrix A
//   - name.rhs  right-hand side b (one row)
//   - name.cost cost rows C
//   - name.ub   upper bounds u (one row)
//   - name.lat  lattice generators, one vector per row
//   - name.gro  a computed basis, one oriented vector per row
//
// [Read] and [Write] work on streams, [ReadFile] and [WriteFile] on
// paths, and [Form] converts a basis set into the row shape the .gro
// files store.
package fourti2
