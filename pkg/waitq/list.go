package waitq

import (
	"iter"

	"github.com/vic/waitq/pkg/dlist"
)

// ListQueue keeps waiters in a sorted intrusive list. Insertion scans from
// the head; the head is always the foremost waiter.
//
// The zero value is an empty queue ready to use.
type ListQueue[T any] struct {
	list dlist.List[*Node[T]]
}

// Init empties q.
func (q *ListQueue[T]) Init() {
	q.list.Init()
}

// Insert links n behind every waiter of equal or higher priority.
func (q *ListQueue[T]) Insert(n *Node[T], priority int) {
	stamp(q, n, priority)
	// n carries the newest sequence, so the first waiter that sorts after
	// it is the first one with a strictly larger priority value.
	for cur := range q.list.All() {
		if Less(n, cur) {
			q.list.InsertBefore(cur, n)
			return
		}
	}
	q.list.Append(n)
}

// PopHead unlinks and returns the foremost waiter, or nil.
func (q *ListQueue[T]) PopHead() *Node[T] {
	n := q.list.PeekHead()
	if n != nil {
		q.unlink(n)
	}
	return n
}

// PeekHead returns the foremost waiter without unlinking it, or nil.
func (q *ListQueue[T]) PeekHead() *Node[T] {
	return q.list.PeekHead()
}

// Remove unlinks n, which must be linked in q.
func (q *ListQueue[T]) Remove(n *Node[T]) {
	checkLinked(q, n)
	q.unlink(n)
}

func (q *ListQueue[T]) unlink(n *Node[T]) {
	q.list.Remove(n)
	n.queue = nil
}

// Reprioritize moves n, which must be linked in q, to its place for the
// new priority. n queues behind waiters already holding that priority.
func (q *ListQueue[T]) Reprioritize(n *Node[T], priority int) {
	q.Remove(n)
	q.Insert(n, priority)
}

// ForEach visits waiters in service order until visit returns false.
// visit must not link or unlink waiters; see ForEachSafe.
func (q *ListQueue[T]) ForEach(visit func(*Node[T]) bool) {
	for n := range q.list.All() {
		if !visit(n) {
			return
		}
	}
}

// All returns the waiters in service order. The same restrictions as
// ForEach apply.
func (q *ListQueue[T]) All() iter.Seq[*Node[T]] {
	return q.ForEach
}

// ForEachSafe is ForEach, except that visit may unlink the waiter it is
// visiting (and no other).
//
// Only the list backend can offer this. Code that must also build with the
// tree backend uses Drain instead.
func (q *ListQueue[T]) ForEachSafe(visit func(*Node[T]) bool) {
	for n := range q.list.AllSafe() {
		if !visit(n) {
			return
		}
	}
}

// AllSafe is the iterator form of ForEachSafe.
func (q *ListQueue[T]) AllSafe() iter.Seq[*Node[T]] {
	return q.ForEachSafe
}

// Drain unlinks every waiter in service order and hands each to visit
// after it has been unlinked.
func (q *ListQueue[T]) Drain(visit func(*Node[T])) {
	for n := range q.AllSafe() {
		q.unlink(n)
		visit(n)
	}
}

// IsEmpty reports whether no waiter is linked.
func (q *ListQueue[T]) IsEmpty() bool {
	return q.list.IsEmpty()
}

// Len counts the linked waiters. It is O(n).
func (q *ListQueue[T]) Len() int {
	return q.list.Len()
}
