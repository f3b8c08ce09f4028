// Package waitq implements priority-ordered wait queues for kernel
// synchronization objects.
//
// A Node is embedded in the record of every thread that can block. A wait
// queue links those nodes in (priority, arrival) order: lower priority
// values are served first and equal priorities are served first-in
// first-out. Two backends implement the same contract:
//
//   - ListQueue, a sorted intrusive doubly linked list: O(n) insert,
//     O(1) pop.
//   - TreeQueue, an intrusive red-black tree: O(log n) insert and pop.
//
// WaitQ names the backend picked at build time (see backend_*.go).
//
// No operation allocates or blocks. Queues are not safe for concurrent use:
// every call must be made with the owning scheduler's lock held.
package waitq

import (
	"iter"

	"go.uber.org/atomic"

	"github.com/vic/waitq/pkg/dlist"
	"github.com/vic/waitq/pkg/rbtree"
)

// Node is the wait linkage of a blockable record of type T.
//
// The zero Node is unlinked and has no owner. A Node must not be copied
// while linked.
type Node[T any] struct {
	owner    *T
	priority int
	sequence uint64

	// queue is the queue the node is linked in, nil when unlinked.
	queue any

	dnode  dlist.Node[*Node[T]]
	rbnode rbtree.Node[*Node[T]]
}

// Init records the record that embeds n. It is called once, when the
// owning record is created.
func (n *Node[T]) Init(owner *T) {
	n.owner = owner
}

// Owner returns the record that embeds n.
func (n *Node[T]) Owner() *T { return n.owner }

// Priority returns the priority n was last queued with.
func (n *Node[T]) Priority() int { return n.priority }

// Sequence returns the arrival stamp assigned when n was last queued.
func (n *Node[T]) Sequence() uint64 { return n.sequence }

// IsLinked reports whether n is currently linked in a queue.
func (n *Node[T]) IsLinked() bool { return n.queue != nil }

// DNode exposes the list linkage to pkg/dlist.
func (n *Node[T]) DNode() *dlist.Node[*Node[T]] { return &n.dnode }

// RBNode exposes the tree linkage to pkg/rbtree.
func (n *Node[T]) RBNode() *rbtree.Node[*Node[T]] { return &n.rbnode }

// Backend is the contract shared by ListQueue and TreeQueue.
//
// Kernel code uses WaitQ directly; the interface exists for code that must
// drive both backends, such as tests and the script runner.
type Backend[T any] interface {
	Init()
	Insert(n *Node[T], priority int)
	PopHead() *Node[T]
	PeekHead() *Node[T]
	Remove(n *Node[T])
	Reprioritize(n *Node[T], priority int)
	ForEach(visit func(*Node[T]) bool)
	All() iter.Seq[*Node[T]]
	Drain(visit func(*Node[T]))
	IsEmpty() bool
	Len() int
}

var (
	_ Backend[struct{}] = (*ListQueue[struct{}])(nil)
	_ Backend[struct{}] = (*TreeQueue[struct{}])(nil)
)

// sequence stamps every insertion. It starts at zero and is shared by all
// queues. At one insert per nanosecond it wraps after ~584 years; a wrap
// would order the wrapped node ahead of its older peers.
var sequence atomic.Uint64

func nextSequence() uint64 {
	return sequence.Inc()
}

// Less reports whether a is served before b.
func Less[T any](a, b *Node[T]) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.sequence < b.sequence
}

// stamp prepares n for insertion into q.
func stamp[T any](q any, n *Node[T], priority int) {
	if asserts && n.queue != nil {
		panic("waitq: insert of a node that is already linked")
	}
	n.priority = priority
	n.sequence = nextSequence()
	n.queue = q
}

func checkLinked[T any](q any, n *Node[T]) {
	if asserts && n.queue != q {
		panic("waitq: node is not linked in this queue")
	}
}
