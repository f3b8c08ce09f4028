// Package dlist implements an intrusive doubly linked list.
//
// Elements embed a Node and expose it through the Linker interface, so
// linking and unlinking never allocate. The zero value of List is an empty
// list ready to use.
//
// To iterate over a list (where l is a List):
//
//	for e := range l.All() {
//		// do something with e.
//	}
package dlist

import "iter"

// Linker is implemented by element pointer types that embed a Node.
type Linker[E any] interface {
	comparable
	DNode() *Node[E]
}

// Node holds the links of an element. An element is linked in at most one
// list at a time.
type Node[E any] struct {
	next   E
	prev   E
	linked bool
}

// List is an intrusive list of elements of type E.
type List[E Linker[E]] struct {
	head E
	tail E
}

// Init resets l to the empty state. Elements still linked are not touched.
func (l *List[E]) Init() {
	var zero E
	l.head = zero
	l.tail = zero
}

// IsEmpty returns true iff the list is empty.
func (l *List[E]) IsEmpty() bool {
	var zero E
	return l.head == zero
}

// PeekHead returns the first element of l or the zero E.
func (l *List[E]) PeekHead() E {
	return l.head
}

// PeekTail returns the last element of l or the zero E.
func (l *List[E]) PeekTail() E {
	return l.tail
}

// PeekNext returns the element following e or the zero E.
func (l *List[E]) PeekNext(e E) E {
	return e.DNode().next
}

// PeekPrev returns the element preceding e or the zero E.
func (l *List[E]) PeekPrev(e E) E {
	return e.DNode().prev
}

// IsLinked reports whether e is currently linked in a list.
func IsLinked[E Linker[E]](e E) bool {
	return e.DNode().linked
}

// Len returns the number of elements in the list.
//
// NOTE: This is an O(n) operation.
func (l *List[E]) Len() (count int) {
	var zero E
	for e := l.head; e != zero; e = e.DNode().next {
		count++
	}
	return count
}

// Prepend inserts e at the front of l.
func (l *List[E]) Prepend(e E) {
	var zero E
	n := e.DNode()
	n.next = l.head
	n.prev = zero
	n.linked = true
	if l.head != zero {
		l.head.DNode().prev = e
	} else {
		l.tail = e
	}
	l.head = e
}

// Append inserts e at the back of l.
func (l *List[E]) Append(e E) {
	var zero E
	n := e.DNode()
	n.next = zero
	n.prev = l.tail
	n.linked = true
	if l.tail != zero {
		l.tail.DNode().next = e
	} else {
		l.head = e
	}
	l.tail = e
}

// InsertBefore inserts e immediately before ref. A zero ref appends e.
func (l *List[E]) InsertBefore(ref, e E) {
	var zero E
	if ref == zero {
		l.Append(e)
		return
	}
	r := ref.DNode()
	n := e.DNode()
	b := r.prev
	n.next = ref
	n.prev = b
	n.linked = true
	r.prev = e
	if b != zero {
		b.DNode().next = e
	} else {
		l.head = e
	}
}

// Remove unlinks e from l. e must be linked in l.
func (l *List[E]) Remove(e E) {
	var zero E
	n := e.DNode()
	prev := n.prev
	next := n.next

	if prev != zero {
		prev.DNode().next = next
	} else if l.head == e {
		l.head = next
	}

	if next != zero {
		next.DNode().prev = prev
	} else if l.tail == e {
		l.tail = prev
	}

	n.next = zero
	n.prev = zero
	n.linked = false
}

// All walks the list from head to tail.
//
// The loop body must not unlink any element; use AllSafe for that.
func (l *List[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		var zero E
		for e := l.head; e != zero; e = e.DNode().next {
			if !yield(e) {
				return
			}
		}
	}
}

// AllSafe walks the list from head to tail. The element being visited may
// be unlinked by the loop body; no other element may be.
func (l *List[E]) AllSafe() iter.Seq[E] {
	return func(yield func(E) bool) {
		var zero E
		for e := l.head; e != zero; {
			next := e.DNode().next
			if !yield(e) {
				return
			}
			e = next
		}
	}
}
