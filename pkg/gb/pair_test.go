package gb

import (
	"testing"

	"github.com/umonteiro/toric/pkg/order"
)

func TestNewBasicPairNormalizes(t *testing.T) {
	for _, in := range [][2]int{{1, 3}, {3, 1}} {
		p := NewBasicPair(in[0], in[1])
		if p.First() != 1 || p.Second() != 3 {
			t.Errorf("NewBasicPair(%d, %d) = (%d, %d), want (1, 3)",
				in[0], in[1], p.First(), p.Second())
		}
	}
}

func TestNewBasicPairRejectsEqualPositions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBasicPair(2, 2) did not panic")
		}
	}()
	NewBasicPair(2, 2)
}

func TestSignaturePair(t *testing.T) {
	sig := order.NewSignature(1, []int{0, 2, 0})
	p := NewSignaturePair(4, 2, sig)
	if p.First() != 2 || p.Second() != 4 {
		t.Errorf("positions = (%d, %d), want (2, 4)", p.First(), p.Second())
	}
	if !p.Signature().Equal(sig) {
		t.Errorf("Signature() = %v, want %v", p.Signature(), sig)
	}
}
