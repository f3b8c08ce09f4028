package waitq

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// TestPopOrder checks that PopHead returns waiters by priority, and in
// insertion order among equal priorities.
func TestPopOrder(t *testing.T) {
	for _, size := range []int{0, 1, 2, 1000} {
		forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
			r := rand.New(rand.NewPCG(uint64(size), 7))
			ws := newWaiters(size)
			prio := make(map[int]int, size)
			for _, w := range ws {
				p := r.IntN(8) - 2
				prio[w.id] = p
				q.Insert(&w.node, p)
			}
			if q.Len() != size {
				t.Fatalf("Len = %d, want %d", q.Len(), size)
			}

			got := popAll(q)
			if len(got) != size {
				t.Fatalf("popped %d waiters, want %d", len(got), size)
			}
			for i := 1; i < len(got); i++ {
				a, b := got[i-1], got[i]
				if prio[a.id] > prio[b.id] {
					t.Fatalf("priority %d popped before %d", prio[a.id], prio[b.id])
				}
				// ids were inserted in increasing order
				if prio[a.id] == prio[b.id] && a.id > b.id {
					t.Fatalf("FIFO broken at priority %d: %d before %d", prio[a.id], a.id, b.id)
				}
			}
			checkEmpty(t, q)
		})
	}
}

// TestInsertRemoveIdentity checks that inserting a waiter and removing it
// again leaves the queue as it was.
func TestInsertRemoveIdentity(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(11)
		for i, w := range ws[:10] {
			q.Insert(&w.node, i%4)
		}
		before := contents(q)

		for _, p := range []int{-1, 0, 2, 3, 9} {
			extra := ws[10]
			q.Insert(&extra.node, p)
			if !extra.node.IsLinked() {
				t.Fatalf("inserted node not linked")
			}
			q.Remove(&extra.node)
			if extra.node.IsLinked() {
				t.Fatalf("removed node still linked")
			}
			if after := contents(q); !slices.Equal(before, after) {
				t.Fatalf("priority %d: queue changed from %v to %v", p, before, after)
			}
		}
	})
}

// TestMembership runs random insert/pop/remove sequences and checks the
// traversal against a reference set after every step.
func TestMembership(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		r := rand.New(rand.NewPCG(42, 99))
		ws := newWaiters(64)
		linked := make(map[int]bool)

		for step := 0; step < 3000; step++ {
			w := ws[r.IntN(len(ws))]
			switch op := r.IntN(4); {
			case op < 2 && !linked[w.id]:
				q.Insert(&w.node, r.IntN(5))
				linked[w.id] = true
			case op == 2 && linked[w.id]:
				q.Remove(&w.node)
				linked[w.id] = false
			case op == 3:
				if n := q.PopHead(); n != nil {
					if !linked[n.Owner().id] {
						t.Fatalf("popped waiter %d that was not linked", n.Owner().id)
					}
					linked[n.Owner().id] = false
				}
			}

			seen := make(map[int]bool)
			for _, id := range contents(q) {
				if seen[id] {
					t.Fatalf("waiter %d visited twice", id)
				}
				seen[id] = true
			}
			for _, w := range ws {
				if linked[w.id] != seen[w.id] {
					t.Fatalf("step %d: waiter %d linked=%v visited=%v", step, w.id, linked[w.id], seen[w.id])
				}
				if linked[w.id] != w.node.IsLinked() {
					t.Fatalf("step %d: waiter %d IsLinked=%v", step, w.id, w.node.IsLinked())
				}
			}
			// IsEmpty iff PeekHead is nil.
			if q.IsEmpty() != (q.PeekHead() == nil) {
				t.Fatalf("step %d: IsEmpty=%v PeekHead=%v", step, q.IsEmpty(), q.PeekHead())
			}
			if q.Len() != len(seen) {
				t.Fatalf("step %d: Len = %d, traversal found %d", step, q.Len(), len(seen))
			}
		}
	})
}

// TestSafeIterationRemovesAll unlinks every visited waiter during a
// removal-safe walk of the list backend.
func TestSafeIterationRemovesAll(t *testing.T) {
	for _, size := range []int{0, 1, 5, 50} {
		var q ListQueue[waiter]
		ws := newWaiters(size)
		for _, w := range ws {
			q.Insert(&w.node, w.id%3)
		}
		visits := make(map[int]int)
		for n := range q.AllSafe() {
			visits[n.Owner().id]++
			q.Remove(n)
		}
		for _, w := range ws {
			if visits[w.id] != 1 {
				t.Errorf("size %d: waiter %d visited %d times", size, w.id, visits[w.id])
			}
		}
		if !q.IsEmpty() {
			t.Errorf("size %d: queue not empty after safe walk", size)
		}
	}
}

func TestDrain(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(6)
		for _, w := range ws {
			q.Insert(&w.node, 3-w.id%3)
		}
		var got []int
		q.Drain(func(n *Node[waiter]) {
			if n.IsLinked() {
				t.Fatalf("Drain visited a linked node")
			}
			got = append(got, n.Owner().id)
		})
		if want := []int{2, 5, 1, 4, 0, 3}; !slices.Equal(got, want) {
			t.Errorf("Drain order = %v, want %v", got, want)
		}
		checkEmpty(t, q)
	})
}

func TestDrainIntoAnotherQueue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		var dst ListQueue[waiter]
		ws := newWaiters(5)
		for _, w := range ws {
			q.Insert(&w.node, w.id)
		}
		q.Drain(func(n *Node[waiter]) {
			dst.Insert(n, n.Priority())
		})
		checkEmpty(t, q)
		if got := contents(&dst); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
			t.Errorf("relinked order = %v", got)
		}
	})
}

func TestForEachStopsEarly(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		for _, w := range newWaiters(10) {
			q.Insert(&w.node, w.id)
		}
		visited := 0
		q.ForEach(func(n *Node[waiter]) bool {
			visited++
			return n.Owner().id < 2
		})
		if visited != 3 {
			t.Errorf("visited %d, want 3", visited)
		}
		// A new walk starts at the foremost waiter again.
		for n := range q.All() {
			if n.Owner().id != 0 {
				t.Errorf("restarted walk began at %d", n.Owner().id)
			}
			break
		}
	})
}

func TestReprioritize(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(4)
		for _, w := range ws {
			q.Insert(&w.node, 5)
		}
		q.Reprioritize(&ws[2].node, 1)
		if got := contents(q); !slices.Equal(got, []int{2, 0, 1, 3}) {
			t.Fatalf("after boost: %v", got)
		}
		// Same priority again: goes behind its peers.
		q.Reprioritize(&ws[0].node, 5)
		if got := contents(q); !slices.Equal(got, []int{2, 1, 3, 0}) {
			t.Fatalf("after requeue: %v", got)
		}
		q.Reprioritize(&ws[2].node, 9)
		if got := contents(q); !slices.Equal(got, []int{1, 3, 0, 2}) {
			t.Fatalf("after drop: %v", got)
		}
		if p := ws[2].node.Priority(); p != 9 {
			t.Errorf("Priority = %d, want 9", p)
		}
	})
}

func TestSequenceIncreases(t *testing.T) {
	var q ListQueue[waiter]
	ws := newWaiters(3)
	for _, w := range ws {
		q.Insert(&w.node, 0)
	}
	if !(ws[0].node.Sequence() < ws[1].node.Sequence() && ws[1].node.Sequence() < ws[2].node.Sequence()) {
		t.Errorf("sequences not increasing: %d %d %d",
			ws[0].node.Sequence(), ws[1].node.Sequence(), ws[2].node.Sequence())
	}
}

// TestScenarioTieBreak pops priorities [5, 1, 5] as 1, then the two 5s
// in arrival order.
func TestScenarioTieBreak(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(3)
		q.Insert(&ws[0].node, 5)
		q.Insert(&ws[1].node, 1)
		q.Insert(&ws[2].node, 5)
		got := popAll(q)
		if len(got) != 3 || got[0] != ws[1] || got[1] != ws[0] || got[2] != ws[2] {
			t.Errorf("pop order wrong: %v", got)
		}
	})
}

// TestScenarioEmpty checks that an empty queue pops nothing.
func TestScenarioEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		if n := q.PopHead(); n != nil {
			t.Errorf("PopHead on empty queue returned %d", n.Owner().id)
		}
		checkEmpty(t, q)
	})
}

// TestScenarioRemoveHead removes the older of two equal waiters and pops
// the other.
func TestScenarioRemoveHead(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(2)
		a, b := ws[0], ws[1]
		q.Insert(&a.node, 3)
		q.Insert(&b.node, 3)
		q.Remove(&a.node)
		if n := q.PopHead(); n == nil || n.Owner() != b {
			t.Fatalf("PopHead = %v, want b", n)
		}
		checkEmpty(t, q)
	})
}

// TestScenarioDescending inserts 1000 strictly decreasing priorities and
// pops them in increasing order.
func TestScenarioDescending(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		ws := newWaiters(1000)
		for i, w := range ws {
			q.Insert(&w.node, 999-i)
		}
		for want := 0; want < 1000; want++ {
			n := q.PopHead()
			if n == nil {
				t.Fatalf("queue ran dry at %d", want)
			}
			if n.Priority() != want {
				t.Fatalf("popped priority %d, want %d", n.Priority(), want)
			}
		}
		checkEmpty(t, q)
	})
}

func TestWaitQResolvesToBuildBackend(t *testing.T) {
	var q WaitQ[waiter]
	var b Backend[waiter] = &q
	_, isTree := b.(*TreeQueue[waiter])
	if isTree != Scalable {
		t.Errorf("WaitQ is tree=%v, Scalable=%v", isTree, Scalable)
	}
	if (BackendName == "rbtree") != Scalable {
		t.Errorf("BackendName %q disagrees with Scalable=%v", BackendName, Scalable)
	}
}

func benchmarkInsertPop(b *testing.B, q Backend[waiter], n int) {
	ws := newWaiters(n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, w := range ws {
			q.Insert(&w.node, (j*7919)%64)
		}
		for q.PopHead() != nil {
		}
	}
}

func BenchmarkListQueue1000(b *testing.B) { benchmarkInsertPop(b, &ListQueue[waiter]{}, 1000) }
func BenchmarkTreeQueue1000(b *testing.B) { benchmarkInsertPop(b, &TreeQueue[waiter]{}, 1000) }
