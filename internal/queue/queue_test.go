package queue

import (
	"math"
	"testing"
)

func collectHoles(q *Queue, from float64, n int) []Interval {
	it := q.holes(from)
	out := make([]Interval, 0, n)
	for i := 0; i < n; i++ {
		iv, ok := it.next()
		if !ok {
			break
		}
		out = append(out, iv)
	}
	return out
}

func assertHoles(t *testing.T, got []Interval, want []Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestQueuePush(t *testing.T) {
	inf := math.Inf(1)
	q := New(Single)

	assertHoles(t, collectHoles(q, 0.0, 1), []Interval{{0.0, inf}})
	assertHoles(t, collectHoles(q, 10.0, 1), []Interval{{10.0, inf}})

	q.Push(5.0, 15.0)
	assertHoles(t, collectHoles(q, 10.0, 1), []Interval{{15.0, inf}})

	q.Push(15.0, 20.0)
	assertHoles(t, collectHoles(q, 10.0, 1), []Interval{{20.0, inf}})
	assertHoles(t, collectHoles(q, 15.0, 1), []Interval{{20.0, inf}})
	assertHoles(t, collectHoles(q, 20.0, 1), []Interval{{20.0, inf}})

	q.Push(16.0, 42.0)
	assertHoles(t, collectHoles(q, 0.0, 2), []Interval{{0.0, 5.0}, {42.0, inf}})
}

func TestQueuePushDuplicate(t *testing.T) {
	inf := math.Inf(1)
	q := New(Single)

	q.Push(1.0, 2.0)
	q.Push(1.0, 4.0)

	if len(q.Occupied()) != 2 {
		t.Fatalf("expected 2 occupied intervals, got %d", len(q.Occupied()))
	}
	assertHoles(t, collectHoles(q, 0.0, 2), []Interval{{0.0, 1.0}, {4.0, inf}})
}

func TestQueueStep(t *testing.T) {
	inf := math.Inf(1)
	q := New(Single)

	q.Push(10.0, 15.0)
	q.Push(15.0, 20.0)
	q.Push(25.0, 30.0)

	q.Step(10.0)
	assertHoles(t, collectHoles(q, 0.0, 3), []Interval{{0.0, 10.0}, {20.0, 25.0}, {30.0, inf}})

	q.Step(11.0)
	assertHoles(t, collectHoles(q, 0.0, 3), []Interval{{0.0, 10.0}, {20.0, 25.0}, {30.0, inf}})

	q.Step(15.0)
	assertHoles(t, collectHoles(q, 0.0, 3), []Interval{{0.0, 15.0}, {20.0, 25.0}, {30.0, inf}})

	q.Step(20.0)
	assertHoles(t, collectHoles(q, 0.0, 2), []Interval{{0.0, 25.0}, {30.0, inf}})

	q.Step(30.0)
	assertHoles(t, collectHoles(q, 0.0, 1), []Interval{{0.0, inf}})
}

// Invariant 6: vacancy correctness. Next must return a hole that no
// occupied interval intersects, and no earlier hole of sufficient length
// exists.
func TestQueueNextVacancyCorrectness(t *testing.T) {
	q := New(Single)
	q.Push(0.0, 5.0)
	q.Push(10.0, 12.0)

	iv := q.Next(0.0, 3.0)
	if iv.Start != 5.0 {
		t.Fatalf("expected earliest fit at 5.0, got %v", iv)
	}

	iv = q.Next(0.0, 10.0)
	if iv.Start != 12.0 {
		t.Fatalf("expected fit to skip the second occupied interval, got %v", iv)
	}

	for _, occ := range q.Occupied() {
		if iv.Start < occ.Finish && occ.Start < iv.Start+10.0 && iv.Start >= occ.Start {
			t.Fatalf("returned hole %v intersects occupied interval %v", iv, occ)
		}
	}
}

func TestQueueInfiniteCapacityAlwaysVacant(t *testing.T) {
	q := New(Infinite)
	q.Push(0.0, 100.0)

	iv := q.Next(50.0, 1000.0)
	if iv.Start != 50.0 || !math.IsInf(iv.Finish, 1) {
		t.Fatalf("expected [50, +Inf), got %v", iv)
	}
}
