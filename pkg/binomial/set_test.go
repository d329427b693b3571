package binomial

import (
	"reflect"
	"testing"

	"github.com/umonteiro/toric/pkg/order"
)

// cubicSet is the twisted cubic basis {x2^2 - x1*x3, x2*x3 - x1*x4}
// under grevlex, the standard small completion example.
func cubicSet(t *testing.T) *Set {
	t.Helper()
	s := NewSet(order.Grevlex(4))
	for _, v := range [][]int{
		{-1, 2, -1, 0},
		{-1, 1, 1, -1},
	} {
		if err := s.AppendVector(v); err != nil {
			t.Fatalf("AppendVector(%v): %v", v, err)
		}
	}
	return s
}

func TestSBinomial(t *testing.T) {
	s := cubicSet(t)

	// S of the two generators: x3^2 - x2*x4, reoriented.
	got := s.SBinomial(0, 1)
	if want := []int{0, -1, 2, -1}; !reflect.DeepEqual(got, want) {
		t.Errorf("SBinomial(0,1) = %v, want %v", got, want)
	}
	// Antisymmetric inputs give the same oriented output.
	if rev := s.SBinomial(1, 0); !reflect.DeepEqual(rev, got) {
		t.Errorf("SBinomial(1,0) = %v, want %v", rev, got)
	}
}

func TestReduceToZero(t *testing.T) {
	s := cubicSet(t)

	// A copy of element 0 reduces to zero in one head rewrite.
	v := s.At(0).Vector()
	if !s.Reduce(v) {
		t.Error("Reduce of a basis element should reach zero")
	}
	if !s.Reduce(make([]int, 4)) {
		t.Error("Reduce of the zero vector should report zero")
	}
}

func TestReduceNormalForm(t *testing.T) {
	s := cubicSet(t)

	// x2^3 - x1*x4: head x2^3 rewrites by x2^2 - x1*x3 to
	// x1*x2*x3 - x1*x4, then by x2*x3 - x1*x4 to x1^2*x4 - x1*x4,
	// whose common factor cancels in the vector representation.
	v := []int{-1, 3, 0, -1}
	if s.Reduce(v) {
		t.Fatal("Reduce should not reach zero")
	}
	if want := []int{1, 0, 0, 0}; !reflect.DeepEqual(v, want) {
		t.Errorf("normal form = %v, want %v", v, want)
	}
}

func TestReduceFlipsOrientation(t *testing.T) {
	o := order.Grevlex(2)
	s := NewSet(o)
	// x1^2 - x2
	if err := s.AppendVector([]int{2, -1}); err != nil {
		t.Fatal(err)
	}
	// x1^2 - x2^3: one head rewrite leaves x2^3 - x2... reoriented to
	// keep the leading side positive.
	v := []int{2, -3}
	if s.Reduce(v) {
		t.Fatal("Reduce should not reach zero")
	}
	if o.Sign(v) != 1 {
		t.Errorf("result %v is not oriented", v)
	}
	if want := []int{0, 2}; !reflect.DeepEqual(v, want) {
		t.Errorf("normal form = %v, want %v (x2^3 - x2 with x2 cancelled)", v, want)
	}
}

func TestReduceFiltered(t *testing.T) {
	s := cubicSet(t)

	// Blocking every reducer leaves the vector untouched.
	v := s.At(0).Vector()
	orig := append([]int(nil), v...)
	if s.ReduceFiltered(v, func(int, []int) bool { return false }) {
		t.Error("fully filtered reduction cannot reach zero")
	}
	if !reflect.DeepEqual(v, orig) {
		t.Errorf("filtered reduction changed the vector: %v", v)
	}

	// An open filter behaves like Reduce and reports the reducer used.
	var used []int
	v = s.At(0).Vector()
	if !s.ReduceFiltered(v, func(k int, shift []int) bool {
		used = append(used, k)
		return true
	}) {
		t.Error("open filter should reduce a basis element to zero")
	}
	if !reflect.DeepEqual(used, []int{0}) {
		t.Errorf("reducers consulted = %v, want [0]", used)
	}
}

func TestHeadsDisjointAndLCMDegree(t *testing.T) {
	s := cubicSet(t)
	// Heads x2^2 and x2*x3 share x2.
	if s.HeadsDisjoint(0, 1) {
		t.Error("heads sharing x2 reported disjoint")
	}
	if got := s.LCMDegree(0, 1); got != 3 {
		t.Errorf("LCMDegree(0,1) = %d, want 3 (x2^2*x3)", got)
	}

	if err := s.AppendVector([]int{0, -1, 2, -1}); err != nil { // head x3^2
		t.Fatal(err)
	}
	if !s.HeadsDisjoint(0, 2) {
		t.Error("x2^2 and x3^2 have disjoint heads")
	}
	if got := s.LCMDegree(0, 2); got != 4 {
		t.Errorf("LCMDegree(0,2) = %d, want 4", got)
	}
}

func TestPairShift(t *testing.T) {
	s := cubicSet(t)
	// lcm(x2^2, x2*x3) = x2^2*x3; shifts are x3 and x2.
	if got := s.PairShift(0, 1); !reflect.DeepEqual(got, []int{0, 0, 1, 0}) {
		t.Errorf("PairShift(0,1) = %v, want [0 0 1 0]", got)
	}
	if got := s.PairShift(1, 0); !reflect.DeepEqual(got, []int{0, 1, 0, 0}) {
		t.Errorf("PairShift(1,0) = %v, want [0 1 0 0]", got)
	}
}

func TestMinimalizeIdempotent(t *testing.T) {
	o := order.Grevlex(3)
	s := NewSet(o)
	for _, v := range [][]int{
		{1, 0, -1}, // head x1
		{2, 1, -1}, // head x1^2*x2, redundant via x1
		{0, 2, -1}, // head x2^2
		{1, 2, -3}, // head x1*x2^2, redundant twice over
	} {
		if err := s.AppendVector(v); err != nil {
			t.Fatal(err)
		}
	}

	removed := s.Minimalize()
	if removed != 2 {
		t.Errorf("Minimalize removed %d, want 2", removed)
	}
	first := s.Vectors()

	if again := s.Minimalize(); again != 0 {
		t.Errorf("second Minimalize removed %d, want 0", again)
	}
	if !reflect.DeepEqual(s.Vectors(), first) {
		t.Error("Minimalize is not idempotent")
	}
}

func TestMinimalizeKeepsEarlierOnEqualHeads(t *testing.T) {
	o := order.Grevlex(2)
	s := NewSet(o)
	if err := s.AppendVector([]int{3, -1}); err != nil { // x1^3 - x2
		t.Fatal(err)
	}
	if err := s.AppendVector([]int{3, -2}); err != nil { // x1^3 - x2^2
		t.Fatal(err)
	}
	if removed := s.Minimalize(); removed != 1 {
		t.Fatalf("Minimalize removed %d, want 1", removed)
	}
	if got := s.Vectors(); !reflect.DeepEqual(got, [][]int{{3, -1}}) {
		t.Errorf("survivor = %v, want the earlier element", got)
	}
}

func TestInterreduceTailsKeepsHeads(t *testing.T) {
	o := order.Grevlex(2)
	s := NewSet(o)
	// x1^2 - x2^2 and x2 - 1: the first tail rewrites down to 1.
	if err := s.AppendVector([]int{2, -2}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendVector([]int{0, 1}); err != nil {
		t.Fatal(err)
	}
	s.InterreduceTails()
	if s.Len() != 2 {
		t.Fatalf("InterreduceTails changed the element count to %d", s.Len())
	}
	heads := [][]int{s.At(0).Head(), s.At(1).Head()}
	if !reflect.DeepEqual(heads[0], []int{2, 0}) || !reflect.DeepEqual(heads[1], []int{0, 1}) {
		t.Errorf("heads changed: %v", heads)
	}
}

func TestInterreduceYieldsReducedBasis(t *testing.T) {
	s := cubicSet(t)
	if err := s.AppendVector([]int{0, -1, 2, -1}); err != nil {
		t.Fatal(err)
	}
	// Add a redundant element: x2^3 - x1*x3 (head divisible by x2^2).
	if err := s.AppendVector([]int{-1, 3, -1, 0}); err != nil {
		t.Fatal(err)
	}

	removed := s.Interreduce()
	if removed != 1 {
		t.Errorf("Interreduce removed %d, want 1", removed)
	}
	if s.Len() != 3 {
		t.Fatalf("reduced basis has %d elements, want 3", s.Len())
	}
	// No head divides any other element's monomials.
	for i := 0; i < s.Len(); i++ {
		for j := 0; j < s.Len(); j++ {
			if i == j {
				continue
			}
			if s.At(i).headDivides(s.At(j).Head()) {
				t.Errorf("head of %d divides head of %d in a reduced basis", i, j)
			}
			if s.At(i).headDivides(s.At(j).Tail()) {
				t.Errorf("head of %d divides tail of %d in a reduced basis", i, j)
			}
		}
	}
}
