// Package rbtree implements an intrusive red-black tree.
//
// Elements embed a Node and expose it through the Linker interface. The
// tree orders elements with the less-than function given to Init; elements
// that compare equal are kept in insertion order. The minimum element is
// cached so Min is O(1).
package rbtree

import "iter"

// Linker is implemented by element pointer types that embed a Node.
type Linker[E any] interface {
	comparable
	RBNode() *Node[E]
}

// Node holds the tree links of an element.
type Node[E any] struct {
	parent E
	left   E
	right  E
	red    bool
	linked bool
}

// Tree is an intrusive red-black tree of elements of type E.
type Tree[E Linker[E]] struct {
	root  E
	min   E
	less  func(a, b E) bool
	count int
}

// Init resets t to the empty state and sets its ordering.
func (t *Tree[E]) Init(less func(a, b E) bool) {
	var zero E
	t.root = zero
	t.min = zero
	t.count = 0
	t.less = less
}

// Ordered reports whether Init has given t a less-than function.
func (t *Tree[E]) Ordered() bool {
	return t.less != nil
}

// IsEmpty returns true iff the tree holds no elements.
func (t *Tree[E]) IsEmpty() bool {
	var zero E
	return t.root == zero
}

// Len returns the number of elements in t.
func (t *Tree[E]) Len() int {
	return t.count
}

// Min returns the smallest element or the zero E.
func (t *Tree[E]) Min() E {
	return t.min
}

// Max returns the largest element or the zero E.
func (t *Tree[E]) Max() E {
	var zero E
	if t.root == zero {
		return zero
	}
	return maximum(t.root)
}

// IsLinked reports whether e is currently linked in a tree.
func IsLinked[E Linker[E]](e E) bool {
	return e.RBNode().linked
}

// Insert links e into t.
func (t *Tree[E]) Insert(e E) {
	var zero E
	n := e.RBNode()
	*n = Node[E]{red: true, linked: true}

	parent := zero
	left := false
	for cur := t.root; cur != zero; {
		parent = cur
		if t.less(e, cur) {
			left = true
			cur = cur.RBNode().left
		} else {
			left = false
			cur = cur.RBNode().right
		}
	}

	n.parent = parent
	switch {
	case parent == zero:
		t.root = e
	case left:
		parent.RBNode().left = e
	default:
		parent.RBNode().right = e
	}

	if t.min == zero || t.less(e, t.min) {
		t.min = e
	}
	t.count++
	t.insertFixup(e)
}

func (t *Tree[E]) insertFixup(z E) {
	for z != t.root && isRed(z.RBNode().parent) {
		p := z.RBNode().parent
		g := p.RBNode().parent
		if p == g.RBNode().left {
			u := g.RBNode().right
			if isRed(u) {
				p.RBNode().red = false
				u.RBNode().red = false
				g.RBNode().red = true
				z = g
				continue
			}
			if z == p.RBNode().right {
				z = p
				t.rotateLeft(z)
				p = z.RBNode().parent
			}
			p.RBNode().red = false
			g.RBNode().red = true
			t.rotateRight(g)
		} else {
			u := g.RBNode().left
			if isRed(u) {
				p.RBNode().red = false
				u.RBNode().red = false
				g.RBNode().red = true
				z = g
				continue
			}
			if z == p.RBNode().left {
				z = p
				t.rotateRight(z)
				p = z.RBNode().parent
			}
			p.RBNode().red = false
			g.RBNode().red = true
			t.rotateLeft(g)
		}
	}
	t.root.RBNode().red = false
}

// Remove unlinks e from t. e must be linked in t.
func (t *Tree[E]) Remove(z E) {
	var zero E
	if z == t.min {
		t.min = t.Next(z)
	}

	zn := z.RBNode()
	var x, xParent E
	removedRed := zn.red

	switch {
	case zn.left == zero:
		x = zn.right
		xParent = zn.parent
		t.transplant(z, zn.right)
	case zn.right == zero:
		x = zn.left
		xParent = zn.parent
		t.transplant(z, zn.left)
	default:
		y := minimum(zn.right)
		yn := y.RBNode()
		removedRed = yn.red
		x = yn.right
		if yn.parent == z {
			xParent = y
		} else {
			xParent = yn.parent
			t.transplant(y, yn.right)
			yn.right = zn.right
			yn.right.RBNode().parent = y
		}
		t.transplant(z, y)
		yn.left = zn.left
		yn.left.RBNode().parent = y
		yn.red = zn.red
	}

	if !removedRed {
		t.deleteFixup(x, xParent)
	}
	*zn = Node[E]{}
	t.count--
}

func (t *Tree[E]) deleteFixup(x, parent E) {
	var zero E
	for x != t.root && !isRed(x) {
		pn := parent.RBNode()
		if x == pn.left {
			w := pn.right
			if isRed(w) {
				w.RBNode().red = false
				pn.red = true
				t.rotateLeft(parent)
				w = pn.right
			}
			wn := w.RBNode()
			if !isRed(wn.left) && !isRed(wn.right) {
				wn.red = true
				x = parent
				parent = x.RBNode().parent
				continue
			}
			if !isRed(wn.right) {
				wn.left.RBNode().red = false
				wn.red = true
				t.rotateRight(w)
				w = pn.right
				wn = w.RBNode()
			}
			wn.red = pn.red
			pn.red = false
			wn.right.RBNode().red = false
			t.rotateLeft(parent)
			x = t.root
			parent = zero
		} else {
			w := pn.left
			if isRed(w) {
				w.RBNode().red = false
				pn.red = true
				t.rotateRight(parent)
				w = pn.left
			}
			wn := w.RBNode()
			if !isRed(wn.left) && !isRed(wn.right) {
				wn.red = true
				x = parent
				parent = x.RBNode().parent
				continue
			}
			if !isRed(wn.left) {
				wn.right.RBNode().red = false
				wn.red = true
				t.rotateLeft(w)
				w = pn.left
				wn = w.RBNode()
			}
			wn.red = pn.red
			pn.red = false
			wn.left.RBNode().red = false
			t.rotateRight(parent)
			x = t.root
			parent = zero
		}
	}
	if x != zero {
		x.RBNode().red = false
	}
}

// transplant puts v in u's place under u's parent.
func (t *Tree[E]) transplant(u, v E) {
	var zero E
	p := u.RBNode().parent
	switch {
	case p == zero:
		t.root = v
	case u == p.RBNode().left:
		p.RBNode().left = v
	default:
		p.RBNode().right = v
	}
	if v != zero {
		v.RBNode().parent = p
	}
}

func (t *Tree[E]) rotateLeft(x E) {
	// p -> (x a (y b c))
	var zero E
	xn := x.RBNode()
	y := xn.right
	yn := y.RBNode()
	b := yn.left

	xn.right = b
	if b != zero {
		b.RBNode().parent = x
	}

	p := xn.parent
	yn.parent = p
	switch {
	case p == zero:
		t.root = y
	case p.RBNode().left == x:
		p.RBNode().left = y
	default:
		p.RBNode().right = y
	}
	yn.left = x
	xn.parent = y
}

func (t *Tree[E]) rotateRight(y E) {
	// p -> (y (x a b) c)
	var zero E
	yn := y.RBNode()
	x := yn.left
	xn := x.RBNode()
	b := xn.right

	yn.left = b
	if b != zero {
		b.RBNode().parent = y
	}

	p := yn.parent
	xn.parent = p
	switch {
	case p == zero:
		t.root = x
	case p.RBNode().left == y:
		p.RBNode().left = x
	default:
		p.RBNode().right = x
	}
	xn.right = y
	yn.parent = x
}

// Next returns the in-order successor of e or the zero E.
func (t *Tree[E]) Next(e E) E {
	var zero E
	n := e.RBNode()
	if n.right != zero {
		return minimum(n.right)
	}
	p := n.parent
	for p != zero && e == p.RBNode().right {
		e = p
		p = p.RBNode().parent
	}
	return p
}

// Prev returns the in-order predecessor of e or the zero E.
func (t *Tree[E]) Prev(e E) E {
	var zero E
	n := e.RBNode()
	if n.left != zero {
		return maximum(n.left)
	}
	p := n.parent
	for p != zero && e == p.RBNode().left {
		e = p
		p = p.RBNode().parent
	}
	return p
}

// All walks the tree in order, smallest first.
//
// The loop body must not insert or remove elements: rebalancing
// invalidates the walk.
func (t *Tree[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		var zero E
		for e := t.min; e != zero; e = t.Next(e) {
			if !yield(e) {
				return
			}
		}
	}
}

func isRed[E Linker[E]](e E) bool {
	var zero E
	return e != zero && e.RBNode().red
}

func minimum[E Linker[E]](e E) E {
	var zero E
	for l := e.RBNode().left; l != zero; l = e.RBNode().left {
		e = l
	}
	return e
}

func maximum[E Linker[E]](e E) E {
	var zero E
	for r := e.RBNode().right; r != zero; r = e.RBNode().right {
		e = r
	}
	return e
}
