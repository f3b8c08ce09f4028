// Package kernel is a small single-CPU kernel built on pkg/waitq.
//
// Every kernel thread is a goroutine that only runs while it holds the
// emulated CPU. A thread that blocks links its wait node into the wait queue
// of the object it blocks on and hands the CPU to the foremost ready thread.
// Synchronization objects (Mutex, Semaphore, CondVar) each own one wait
// queue and decide, through it, which thread to wake.
//
// Calls made outside any kernel thread (self == nil), and timer expiry, run
// in interrupt context: they may wake threads but never block and never
// preempt the running thread. Preemption happens at the running thread's
// next kernel call.
package kernel

import (
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/vic/waitq/pkg/waitq"
)

// Thread priorities. Lower values run first.
const (
	HighestPriority = -16
	LowestPriority  = 31
)

var (
	ErrWouldBlock = errors.New("kernel: operation would block")
	ErrAborted    = errors.New("kernel: thread aborted")
	ErrNotOwner   = errors.New("kernel: mutex not owned by caller")
	ErrNotLocked  = errors.New("kernel: mutex not locked")
	ErrReset      = errors.New("kernel: semaphore reset")
)

// Kernel schedules threads on one emulated CPU.
type Kernel struct {
	// mu is the scheduler lock. Every wait queue is guarded by it.
	mu      sync.Mutex
	ready   waitq.WaitQ[Thread]
	current *Thread
	threads map[uint64]*Thread
	sleepq  WaitQueue

	nextID atomic.Uint64
	wg     sync.WaitGroup

	counters
	tracer
}

// New returns an idle kernel with no threads.
func New() *Kernel {
	k := &Kernel{
		threads: make(map[uint64]*Thread),
	}
	k.ready.Init()
	k.sleepq.init("sleep", nil)
	return k
}

// schedKey proves the scheduler lock is held. Only lock creates one.
type schedKey struct {
	k *Kernel
}

func (k *Kernel) lock() schedKey {
	k.mu.Lock()
	return schedKey{k}
}

func (key schedKey) unlock() {
	key.k.mu.Unlock()
}

// Spawn creates a thread running entry and makes it ready. An idle CPU is
// handed to it at once; otherwise it waits for its turn.
func (k *Kernel) Spawn(name string, prio int, entry func(*Thread)) *Thread {
	t := &Thread{
		id:     k.nextID.Inc(),
		name:   name,
		k:      k,
		prio:   clampPriority(prio),
		resume: make(chan struct{}, 1),
		entry:  entry,
	}
	t.wait.Init(t)

	k.wg.Add(1)
	go t.run()

	key := k.lock()
	k.threads[t.id] = t
	k.readyThread(key, t)
	key.unlock()
	return t
}

// Wait blocks until every spawned thread has returned.
func (k *Kernel) Wait() {
	k.wg.Wait()
}

func (k *Kernel) exit(t *Thread) {
	key := k.lock()
	k.checkCurrent(key, t)
	debugLog("exit", t)
	t.state = StateDead
	delete(k.threads, t.id)
	k.dispatchNext(key)
	key.unlock()
	k.wg.Done()
}

// checkCurrent panics, releasing the scheduler lock first, unless t holds
// the CPU.
func (k *Kernel) checkCurrent(key schedKey, t *Thread) {
	if t != k.current {
		key.unlock()
		panic("kernel: " + t.name + " called the kernel while not running")
	}
}

func clampPriority(prio int) int {
	if prio < HighestPriority {
		return HighestPriority
	}
	if prio > LowestPriority {
		return LowestPriority
	}
	return prio
}
