package waitq

import "testing"

type waiter struct {
	id   int
	node Node[waiter]
}

func newWaiters(n int) []*waiter {
	ws := make([]*waiter, n)
	for i := range ws {
		ws[i] = &waiter{id: i}
		ws[i].node.Init(ws[i])
	}
	return ws
}

type backendCase struct {
	name string
	new  func() Backend[waiter]
}

func backends() []backendCase {
	return []backendCase{
		{"dlist", func() Backend[waiter] { q := &ListQueue[waiter]{}; q.Init(); return q }},
		{"rbtree", func() Backend[waiter] { q := &TreeQueue[waiter]{}; q.Init(); return q }},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, q Backend[waiter])) {
	t.Helper()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.new())
		})
	}
}

// contents returns the waiter ids in traversal order.
func contents(q Backend[waiter]) []int {
	var ids []int
	for n := range q.All() {
		ids = append(ids, n.Owner().id)
	}
	return ids
}

// popAll drains q with PopHead and returns the popped waiters.
func popAll(q Backend[waiter]) []*waiter {
	var out []*waiter
	for n := q.PopHead(); n != nil; n = q.PopHead() {
		out = append(out, n.Owner())
	}
	return out
}

func checkEmpty(t *testing.T, q Backend[waiter]) {
	t.Helper()
	if !q.IsEmpty() {
		t.Fatalf("queue should be empty")
	}
	if q.PeekHead() != nil {
		t.Fatalf("PeekHead on empty queue returned waiter %d", q.PeekHead().Owner().id)
	}
	if q.Len() != 0 {
		t.Fatalf("Len = %d, want 0", q.Len())
	}
	if ids := contents(q); len(ids) != 0 {
		t.Fatalf("traversal of empty queue yielded %v", ids)
	}
}
