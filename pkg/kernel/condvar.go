package kernel

import "context"

// CondVar is a condition variable used together with a Mutex.
type CondVar struct {
	k    *Kernel
	wait WaitQueue
}

func (k *Kernel) NewCondVar(name string) *CondVar {
	c := &CondVar{k: k}
	c.wait.init(name, nil)
	return c
}

// Wait releases m, which self must own, and blocks until signalled, ctx
// is done or self is aborted. m is locked again before Wait returns,
// whatever the outcome; an aborted self still waits for m.
func (c *CondVar) Wait(ctx context.Context, self *Thread, m *Mutex) error {
	k := c.k
	key := k.lock()
	if err := k.canBlock(key, self, ctx); err != nil {
		key.unlock()
		return err
	}
	if err := m.unlockLocked(key, self); err != nil {
		key.unlock()
		return err
	}
	err := k.pend(key, self, &c.wait, ctx)
	key = k.lock()
	if lerr := m.lockLocked(key, self, context.Background(), true); err == nil {
		err = lerr
	}
	return err
}

// Signal wakes the foremost waiter, if any.
func (c *CondVar) Signal(self *Thread) {
	key := c.k.lock()
	if n := c.wait.locked(key).PopHead(); n != nil {
		c.k.wake(key, n.Owner(), nil)
	}
	c.k.reschedule(key, self)
}

// Broadcast wakes every waiter in priority order and returns how many
// there were.
func (c *CondVar) Broadcast(self *Thread) int {
	key := c.k.lock()
	woken := 0
	c.wait.locked(key).Drain(func(n *waitqNode) {
		c.k.wake(key, n.Owner(), nil)
		woken++
	})
	c.k.reschedule(key, self)
	return woken
}

func (c *CondVar) Waiters() []*Thread {
	key := c.k.lock()
	defer key.unlock()
	return c.wait.threads(key)
}
