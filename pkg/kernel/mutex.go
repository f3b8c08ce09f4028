package kernel

import "context"

// Mutex is a recursive lock with priority inheritance: while threads wait
// on it, its owner runs at the priority of the foremost waiter if that is
// higher than its own. Inheritance is one level deep; an owner blocked on
// another mutex does not pass the boost on.
type Mutex struct {
	k    *Kernel
	wait WaitQueue

	// Guarded by the scheduler lock.
	owner         *Thread
	lockCount     int
	ownerOrigPrio int
}

// NewMutex returns an unlocked mutex.
func (k *Kernel) NewMutex(name string) *Mutex {
	m := &Mutex{k: k}
	m.wait.init(name, m)
	return m
}

// Lock acquires m for self, blocking until m is handed over, ctx is done
// or self is aborted. A thread that already owns m locks it again and
// must unlock it as many times.
func (m *Mutex) Lock(ctx context.Context, self *Thread) error {
	key := m.k.lock()
	return m.lockLocked(key, self, ctx, false)
}

// lockLocked is Lock with the scheduler lock already held; it releases
// it. A relock ignores self's abort and waits for m regardless.
func (m *Mutex) lockLocked(key schedKey, self *Thread, ctx context.Context, relock bool) error {
	k := m.k
	if self == nil {
		key.unlock()
		return ErrWouldBlock
	}
	k.checkCurrent(key, self)

	if m.lockCount == 0 {
		m.owner = self
		m.ownerOrigPrio = self.prio
	}
	if m.owner == self {
		m.lockCount++
		key.unlock()
		return nil
	}
	err := ctx.Err()
	if !relock {
		err = k.canBlock(key, self, ctx)
	}
	if err != nil {
		key.unlock()
		return err
	}

	if self.prio < m.owner.prio && k.setPriority(key, m.owner, self.prio) {
		k.boosts.Inc()
		k.recordTrace(EventBoost, m.owner, &m.wait)
	}
	err = k.block(key, self, &m.wait, ctx)
	if err == nil {
		// Unlock handed m over.
		return nil
	}

	key = k.lock()
	if m.owner != nil {
		m.restoreOwnerPrio(key)
	}
	k.reschedule(key, self)
	return err
}

// restoreOwnerPrio drops the owner's inherited priority to what the
// remaining waiters still justify.
func (m *Mutex) restoreOwnerPrio(key schedKey) {
	prio := m.ownerOrigPrio
	if head := m.wait.locked(key).PeekHead(); head != nil && head.Priority() < prio {
		prio = head.Priority()
	}
	m.k.setPriority(key, m.owner, prio)
}

// Unlock releases one level of self's ownership. On the last level the
// owner's own priority is restored and m passes to the foremost waiter.
func (m *Mutex) Unlock(self *Thread) error {
	key := m.k.lock()
	if err := m.unlockLocked(key, self); err != nil {
		key.unlock()
		return err
	}
	m.k.reschedule(key, self)
	return nil
}

func (m *Mutex) unlockLocked(key schedKey, self *Thread) error {
	if m.owner == nil {
		return ErrNotLocked
	}
	if m.owner != self {
		return ErrNotOwner
	}
	m.lockCount--
	if m.lockCount > 0 {
		return nil
	}
	m.k.setPriority(key, self, m.ownerOrigPrio)

	n := m.wait.locked(key).PopHead()
	if n == nil {
		m.owner = nil
		return nil
	}
	next := n.Owner()
	m.owner = next
	m.lockCount = 1
	m.ownerOrigPrio = next.prio
	m.k.wake(key, next, nil)
	return nil
}

// Owner returns the thread holding m, or nil.
func (m *Mutex) Owner() *Thread {
	key := m.k.lock()
	defer key.unlock()
	return m.owner
}

// Waiters returns the threads blocked on m in hand-off order.
func (m *Mutex) Waiters() []*Thread {
	key := m.k.lock()
	defer key.unlock()
	return m.wait.threads(key)
}
