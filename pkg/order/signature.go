package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingLeads indicates a Schreyer order built without the
// generator leading exponents it weights positions by.
var ErrMissingLeads = errors.New("order: schreyer order requires generator leading exponents")

// Signature identifies a module monomial x^Exp * e_Index: the basis
// position a polynomial was derived from together with the monomial
// multiplier accumulated on the way. Signatures order the work queue of
// the signature-based completion variant and never influence the
// reduced result.
type Signature struct {
	Index int
	Exp   []int
}

// NewSignature builds a signature from a position and a monomial
// exponent. The exponent is copied.
func NewSignature(index int, exp []int) Signature {
	return Signature{Index: index, Exp: append([]int(nil), exp...)}
}

// Mul shifts the signature by a monomial, returning x^m * s as a new
// value.
func (s Signature) Mul(m []int) Signature {
	exp := make([]int, len(s.Exp))
	for i := range exp {
		exp[i] = s.Exp[i] + m[i]
	}
	return Signature{Index: s.Index, Exp: exp}
}

// Divides reports whether s divides t as module monomials: same
// position and componentwise smaller-or-equal exponent.
func (s Signature) Divides(t Signature) bool {
	if s.Index != t.Index || len(s.Exp) != len(t.Exp) {
		return false
	}
	for i, e := range s.Exp {
		if e > t.Exp[i] {
			return false
		}
	}
	return true
}

// Equal reports componentwise equality.
func (s Signature) Equal(t Signature) bool {
	if s.Index != t.Index || len(s.Exp) != len(t.Exp) {
		return false
	}
	for i, e := range s.Exp {
		if e != t.Exp[i] {
			return false
		}
	}
	return true
}

// String renders the signature as x^[...]*e(i) for logs.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString("x^[")
	for i, e := range s.Exp {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", e)
	}
	fmt.Fprintf(&b, "]*e(%d)", s.Index)
	return b.String()
}

// ModuleOrder selects how signatures extend a monomial order to module
// monomials.
type ModuleOrder int

const (
	// PositionOverTerm compares generator positions first (lower
	// position smaller), monomials second.
	PositionOverTerm ModuleOrder = iota

	// TermOverPosition compares monomials first, positions second.
	TermOverPosition

	// Schreyer compares monomials after shifting each by the leading
	// exponent of its generator, positions second.
	Schreyer
)

// ParseModuleOrder maps the flag spellings "pot", "top" and "schreyer"
// to module orders.
func ParseModuleOrder(s string) (ModuleOrder, error) {
	switch strings.ToLower(s) {
	case "pot":
		return PositionOverTerm, nil
	case "top":
		return TermOverPosition, nil
	case "schreyer":
		return Schreyer, nil
	}
	return 0, fmt.Errorf("order: unknown module order %q (must be one of: pot, top, schreyer)", s)
}

func (m ModuleOrder) String() string {
	switch m {
	case PositionOverTerm:
		return "pot"
	case TermOverPosition:
		return "top"
	case Schreyer:
		return "schreyer"
	}
	return fmt.Sprintf("ModuleOrder(%d)", int(m))
}

// SignatureOrder compares signatures under a fixed monomial order,
// module order kind and, for Schreyer, the leading exponents of the
// run's initial generators. The comparison context is bound once at
// construction so every comparison in a run agrees; spawning a second
// run with its own context is safe.
type SignatureOrder struct {
	mono  *Order
	kind  ModuleOrder
	leads [][]int
}

// NewSignatureOrder binds a comparison context. leads holds the leading
// exponent of each initial generator, indexed by signature position; it
// may be nil for PositionOverTerm and TermOverPosition.
func NewSignatureOrder(mono *Order, kind ModuleOrder, leads [][]int) (*SignatureOrder, error) {
	if mono == nil {
		return nil, errors.New("order: signature order requires a monomial order")
	}
	switch kind {
	case PositionOverTerm, TermOverPosition:
	case Schreyer:
		if len(leads) == 0 {
			return nil, ErrMissingLeads
		}
	default:
		return nil, fmt.Errorf("order: unknown module order %d", int(kind))
	}
	return &SignatureOrder{mono: mono, kind: kind, leads: leads}, nil
}

// Kind returns the module order the comparisons follow.
func (so *SignatureOrder) Kind() ModuleOrder { return so.kind }

// Compare orders two signatures, returning -1, 0 or +1. The result is 0
// exactly when the signatures are equal, so Less is a strict weak
// ordering (in fact total) on signatures.
func (so *SignatureOrder) Compare(a, b Signature) int {
	switch so.kind {
	case PositionOverTerm:
		if a.Index != b.Index {
			return cmpInt(a.Index, b.Index)
		}
		return so.mono.Compare(a.Exp, b.Exp)
	case TermOverPosition:
		if c := so.mono.Compare(a.Exp, b.Exp); c != 0 {
			return c
		}
		return cmpInt(a.Index, b.Index)
	default: // Schreyer
		sa := shifted(a.Exp, so.leads[a.Index])
		sb := shifted(b.Exp, so.leads[b.Index])
		if c := so.mono.Compare(sa, sb); c != 0 {
			return c
		}
		return cmpInt(a.Index, b.Index)
	}
}

// Less reports whether a precedes b.
func (so *SignatureOrder) Less(a, b Signature) bool { return so.Compare(a, b) < 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func shifted(exp, lead []int) []int {
	out := make([]int, len(exp))
	for i := range out {
		out[i] = exp[i] + lead[i]
	}
	return out
}
