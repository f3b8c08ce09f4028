package kernel

import (
	"context"
	"fmt"
)

// Semaphore is a counting semaphore whose waiters are served by priority.
type Semaphore struct {
	k     *Kernel
	wait  WaitQueue
	count uint
	limit uint
}

// NewSemaphore returns a semaphore holding initial units, never more
// than limit.
func (k *Kernel) NewSemaphore(name string, initial, limit uint) (*Semaphore, error) {
	if limit == 0 {
		return nil, fmt.Errorf("kernel: semaphore %q: zero limit", name)
	}
	if initial > limit {
		return nil, fmt.Errorf("kernel: semaphore %q: initial count %d exceeds limit %d", name, initial, limit)
	}
	s := &Semaphore{k: k, count: initial, limit: limit}
	s.wait.init(name, nil)
	return s, nil
}

// Take acquires one unit, blocking until one is given, ctx is done, the
// semaphore is reset or self is aborted. From interrupt context it only
// succeeds if a unit is available.
func (s *Semaphore) Take(ctx context.Context, self *Thread) error {
	key := s.k.lock()
	if s.count > 0 {
		s.count--
		key.unlock()
		return nil
	}
	return s.k.pend(key, self, &s.wait, ctx)
}

// Give hands a unit to the foremost waiter, or adds it to the count. A
// count already at the limit stays there.
func (s *Semaphore) Give(self *Thread) {
	key := s.k.lock()
	if n := s.wait.locked(key).PopHead(); n != nil {
		s.k.wake(key, n.Owner(), nil)
	} else if s.count < s.limit {
		s.count++
	}
	s.k.reschedule(key, self)
}

// Reset zeroes the count and fails every waiter with ErrReset.
func (s *Semaphore) Reset(self *Thread) {
	key := s.k.lock()
	s.count = 0
	s.wait.locked(key).Drain(func(n *waitqNode) {
		s.k.wake(key, n.Owner(), ErrReset)
	})
	s.k.reschedule(key, self)
}

func (s *Semaphore) Count() uint {
	key := s.k.lock()
	defer key.unlock()
	return s.count
}

// Waiters returns the blocked threads in service order.
func (s *Semaphore) Waiters() []*Thread {
	key := s.k.lock()
	defer key.unlock()
	return s.wait.threads(key)
}
