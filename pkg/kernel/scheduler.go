package kernel

import (
	"context"
	"errors"
	"time"
)

// readyThread makes t runnable. An idle CPU is handed to it at once.
func (k *Kernel) readyThread(key schedKey, t *Thread) {
	t.state = StateReady
	k.ready.Insert(&t.wait, t.prio)
	if k.current == nil {
		k.dispatchNext(key)
	}
}

// dispatchNext hands the CPU to the foremost ready thread, or idles.
func (k *Kernel) dispatchNext(key schedKey) {
	n := k.ready.PopHead()
	if n == nil {
		k.current = nil
		return
	}
	t := n.Owner()
	t.state = StateRunning
	k.current = t
	k.switches.Inc()
	k.recordTrace(EventSwitch, t, nil)
	debugLog("dispatch", t)
	t.resume <- struct{}{}
}

// swap gives the CPU away, releases the scheduler lock and returns once
// self holds the CPU again, with the status it was woken with.
func (k *Kernel) swap(key schedKey, self *Thread) error {
	k.dispatchNext(key)
	key.unlock()
	<-self.resume
	return self.wakeErr
}

// reschedule releases the scheduler lock, first letting a strictly
// higher-priority ready thread preempt self. Interrupt context (self ==
// nil) never preempts.
func (k *Kernel) reschedule(key schedKey, self *Thread) {
	if self == nil {
		key.unlock()
		return
	}
	k.checkCurrent(key, self)
	head := k.ready.PeekHead()
	if head == nil || head.Priority() >= self.prio {
		key.unlock()
		return
	}
	self.state = StateReady
	self.wakeErr = nil
	k.ready.Insert(&self.wait, self.prio)
	k.swap(key, self)
}

// pend blocks self on wq until it is woken, ctx is done or self is
// aborted. It always releases the scheduler lock.
func (k *Kernel) pend(key schedKey, self *Thread, wq *WaitQueue, ctx context.Context) error {
	if err := k.canBlock(key, self, ctx); err != nil {
		key.unlock()
		return err
	}
	return k.block(key, self, wq, ctx)
}

// block is pend without the checks. self must be the running thread.
func (k *Kernel) block(key schedKey, self *Thread, wq *WaitQueue, ctx context.Context) error {
	self.state = StatePending
	self.pendedOn = wq
	self.pendGen++
	self.wakeErr = nil
	wq.locked(key).Insert(&self.wait, self.prio)
	k.pends.Inc()
	k.recordTrace(EventPend, self, wq)
	debugLog("pend", self)

	gen := self.pendGen
	stop := context.AfterFunc(ctx, func() {
		k.expire(self, gen, ctx)
	})
	err := k.swap(key, self)
	stop()
	return err
}

// canBlock reports why self cannot block right now, if it cannot.
func (k *Kernel) canBlock(key schedKey, self *Thread, ctx context.Context) error {
	if self == nil {
		return ErrWouldBlock
	}
	k.checkCurrent(key, self)
	if self.aborted {
		return ErrAborted
	}
	return ctx.Err()
}

// expire ends a wait whose context is done. A wake or abort that got
// there first leaves the thread out of that wait, and nothing happens.
func (k *Kernel) expire(t *Thread, gen uint64, ctx context.Context) {
	key := k.lock()
	defer key.unlock()
	if t.state != StatePending || t.pendGen != gen {
		return
	}
	wq := t.pendedOn
	wq.locked(key).Remove(&t.wait)
	k.timeouts.Inc()
	k.recordTrace(EventTimeout, t, wq)
	k.wake(key, t, ctx.Err())
}

// wake readies t, already unlinked from the queue it pended on, with the
// given status.
func (k *Kernel) wake(key schedKey, t *Thread, err error) {
	if err == nil {
		k.wakes.Inc()
		k.recordTrace(EventWake, t, t.pendedOn)
	}
	debugLog("wake", t)
	t.pendedOn = nil
	t.wakeErr = err
	k.readyThread(key, t)
}

// setPriority changes t's priority and repositions it in whatever queue
// holds it. It reports whether anything changed.
func (k *Kernel) setPriority(key schedKey, t *Thread, prio int) bool {
	prio = clampPriority(prio)
	if prio == t.prio {
		return false
	}
	t.prio = prio
	switch t.state {
	case StateReady:
		k.ready.Reprioritize(&t.wait, prio)
	case StatePending:
		t.pendedOn.locked(key).Reprioritize(&t.wait, prio)
	}
	return true
}

// SetPriority changes t's priority. self is the calling thread, or nil in
// interrupt context; it is preempted if t now outranks it.
func (k *Kernel) SetPriority(self, t *Thread, prio int) {
	key := k.lock()
	if t.state != StateDead {
		k.setPriority(key, t, prio)
	}
	k.reschedule(key, self)
}

// Yield puts self behind the ready threads of its priority.
func (k *Kernel) Yield(self *Thread) {
	key := k.lock()
	k.checkCurrent(key, self)
	self.state = StateReady
	self.wakeErr = nil
	k.ready.Insert(&self.wait, self.prio)
	k.swap(key, self)
}

// Sleep blocks self for d, or until Wakeup is called on it.
func (k *Kernel) Sleep(self *Thread, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	key := k.lock()
	err := k.pend(key, self, &k.sleepq, ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Wakeup ends t's Sleep early. It does nothing if t is not sleeping.
func (k *Kernel) Wakeup(t *Thread) {
	key := k.lock()
	defer key.unlock()
	if t.state != StatePending || t.pendedOn != &k.sleepq {
		return
	}
	k.sleepq.locked(key).Remove(&t.wait)
	k.wake(key, t, nil)
}

// Abort makes every current and future blocking call of t fail with
// ErrAborted, except the mutex reacquire that ends a CondVar.Wait. A
// pending t is unlinked from its wait queue and readied.
func (k *Kernel) Abort(t *Thread) {
	key := k.lock()
	defer key.unlock()
	if t.state == StateDead || t.aborted {
		return
	}
	t.aborted = true
	k.aborts.Inc()
	if t.state == StatePending {
		wq := t.pendedOn
		wq.locked(key).Remove(&t.wait)
		k.recordTrace(EventAbort, t, wq)
		k.wake(key, t, ErrAborted)
	}
}
