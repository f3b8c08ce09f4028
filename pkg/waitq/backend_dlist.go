//go:build !waitq_scalable

package waitq

// Scalable reports whether WaitQ is the tree backend.
const Scalable = false

// BackendName names the backend WaitQ resolves to.
const BackendName = "dlist"

// WaitQ is the wait queue used by kernel objects. Build with
// -tags waitq_scalable to switch it to the red-black tree backend.
type WaitQ[T any] = ListQueue[T]
