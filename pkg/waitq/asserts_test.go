//go:build waitq_asserts

package waitq

import (
	"strings"
	"testing"
)

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		if msg, _ := r.(string); !strings.Contains(msg, substr) {
			t.Fatalf("panic %v, want %q", r, substr)
		}
	}()
	fn()
}

func TestAssertDoubleInsert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		w := newWaiters(1)[0]
		q.Insert(&w.node, 1)
		expectPanic(t, "already linked", func() { q.Insert(&w.node, 2) })
	})
}

func TestAssertRemoveUnlinked(t *testing.T) {
	forEachBackend(t, func(t *testing.T, q Backend[waiter]) {
		w := newWaiters(1)[0]
		expectPanic(t, "not linked in this queue", func() { q.Remove(&w.node) })
	})
}

func TestAssertRemoveFromOtherQueue(t *testing.T) {
	var a, b ListQueue[waiter]
	w := newWaiters(1)[0]
	a.Insert(&w.node, 0)
	expectPanic(t, "not linked in this queue", func() { b.Remove(&w.node) })
	expectPanic(t, "not linked in this queue", func() { b.Reprioritize(&w.node, 3) })
}
