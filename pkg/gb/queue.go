package gb

import (
	"container/heap"

	"github.com/umonteiro/toric/pkg/order"
)

// degreeQueue is a min-heap of basic pairs keyed by the total degree of
// the head lcm, with ties broken by (second, first) position. Degree
// selection keeps Buchberger runs close to the classic normal strategy
// while staying fully deterministic.
type degreeQueue struct {
	items []scoredPair
}

type scoredPair struct {
	pair   BasicPair
	degree int
}

func (q *degreeQueue) Len() int { return len(q.items) }

func (q *degreeQueue) Less(a, b int) bool {
	x, y := q.items[a], q.items[b]
	if x.degree != y.degree {
		return x.degree < y.degree
	}
	if x.pair.Second() != y.pair.Second() {
		return x.pair.Second() < y.pair.Second()
	}
	return x.pair.First() < y.pair.First()
}

func (q *degreeQueue) Swap(a, b int) { q.items[a], q.items[b] = q.items[b], q.items[a] }

func (q *degreeQueue) Push(x any) { q.items = append(q.items, x.(scoredPair)) }

func (q *degreeQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *degreeQueue) push(p BasicPair, degree int) {
	heap.Push(q, scoredPair{pair: p, degree: degree})
}

func (q *degreeQueue) pop() (BasicPair, bool) {
	if q.Len() == 0 {
		return BasicPair{}, false
	}
	return heap.Pop(q).(scoredPair).pair, true
}

// sigQueue is a min-heap of signature pairs in non-decreasing signature
// order, with ties broken by (second, first) position. Processing pairs
// signature-first is what makes the syzygy criteria of the signature
// variant sound.
type sigQueue struct {
	items []SignaturePair
	ord   *order.SignatureOrder
}

func (q *sigQueue) Len() int { return len(q.items) }

func (q *sigQueue) Less(a, b int) bool {
	x, y := q.items[a], q.items[b]
	if c := q.ord.Compare(x.Signature(), y.Signature()); c != 0 {
		return c < 0
	}
	if x.Second() != y.Second() {
		return x.Second() < y.Second()
	}
	return x.First() < y.First()
}

func (q *sigQueue) Swap(a, b int) { q.items[a], q.items[b] = q.items[b], q.items[a] }

func (q *sigQueue) Push(x any) { q.items = append(q.items, x.(SignaturePair)) }

func (q *sigQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *sigQueue) push(p SignaturePair) {
	heap.Push(q, p)
}

func (q *sigQueue) pop() (SignaturePair, bool) {
	if q.Len() == 0 {
		return SignaturePair{}, false
	}
	return heap.Pop(q).(SignaturePair), true
}
