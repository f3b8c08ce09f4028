//go:build !waitq_asserts

package waitq

// asserts enables precondition checks on queue operations.
const asserts = false
