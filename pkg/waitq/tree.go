package waitq

import (
	"iter"

	"github.com/vic/waitq/pkg/rbtree"
)

// TreeQueue keeps waiters in an intrusive red-black tree keyed by
// (priority, sequence). It is the scalable backend for queues that can grow
// long.
//
// The zero value is an empty queue ready to use.
type TreeQueue[T any] struct {
	tree rbtree.Tree[*Node[T]]
}

// Init empties q.
func (q *TreeQueue[T]) Init() {
	q.tree.Init(Less[T])
}

// Insert links n behind every waiter of equal or higher priority.
func (q *TreeQueue[T]) Insert(n *Node[T], priority int) {
	if !q.tree.Ordered() {
		q.tree.Init(Less[T])
	}
	stamp(q, n, priority)
	q.tree.Insert(n)
}

// PopHead unlinks and returns the foremost waiter, or nil.
func (q *TreeQueue[T]) PopHead() *Node[T] {
	n := q.tree.Min()
	if n != nil {
		q.unlink(n)
	}
	return n
}

// PeekHead returns the foremost waiter without unlinking it, or nil.
func (q *TreeQueue[T]) PeekHead() *Node[T] {
	return q.tree.Min()
}

// Remove unlinks n, which must be linked in q.
func (q *TreeQueue[T]) Remove(n *Node[T]) {
	checkLinked(q, n)
	q.unlink(n)
}

func (q *TreeQueue[T]) unlink(n *Node[T]) {
	q.tree.Remove(n)
	n.queue = nil
}

// Reprioritize moves n, which must be linked in q, to its place for the
// new priority. n queues behind waiters already holding that priority.
func (q *TreeQueue[T]) Reprioritize(n *Node[T], priority int) {
	q.Remove(n)
	q.Insert(n, priority)
}

// ForEach visits waiters in service order until visit returns false.
//
// visit must not link or unlink any waiter, the one being visited
// included: removal rebalances the tree under the walk. There is no safe
// variant for this backend; use Drain.
func (q *TreeQueue[T]) ForEach(visit func(*Node[T]) bool) {
	for n := range q.tree.All() {
		if !visit(n) {
			return
		}
	}
}

// All returns the waiters in service order. The same restrictions as
// ForEach apply.
func (q *TreeQueue[T]) All() iter.Seq[*Node[T]] {
	return q.ForEach
}

// Drain unlinks every waiter in service order and hands each to visit
// after it has been unlinked.
func (q *TreeQueue[T]) Drain(visit func(*Node[T])) {
	for n := q.PopHead(); n != nil; n = q.PopHead() {
		visit(n)
	}
}

// IsEmpty reports whether no waiter is linked.
func (q *TreeQueue[T]) IsEmpty() bool {
	return q.tree.IsEmpty()
}

// Len returns the number of linked waiters.
func (q *TreeQueue[T]) Len() int {
	return q.tree.Len()
}
