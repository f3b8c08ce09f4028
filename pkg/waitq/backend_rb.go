//go:build waitq_scalable

package waitq

// Scalable reports whether WaitQ is the tree backend.
const Scalable = true

// BackendName names the backend WaitQ resolves to.
const BackendName = "rbtree"

// WaitQ is the wait queue used by kernel objects. Build without
// -tags waitq_scalable to switch it to the sorted list backend.
type WaitQ[T any] = TreeQueue[T]
