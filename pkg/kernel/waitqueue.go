package kernel

import "github.com/vic/waitq/pkg/waitq"

// WaitQueue is the set of threads blocked on one kernel object.
type WaitQueue struct {
	name string
	q    waitq.WaitQ[Thread]

	// mutex is the owning mutex, nil for other objects. Deadlock
	// detection follows it to the owner.
	mutex *Mutex
}

func (w *WaitQueue) init(name string, m *Mutex) {
	w.name = name
	w.mutex = m
	w.q.Init()
}

// Name returns the name of the owning object.
func (w *WaitQueue) Name() string { return w.name }

// locked hands out the queue to holders of the scheduler lock.
func (w *WaitQueue) locked(schedKey) *waitq.WaitQ[Thread] {
	return &w.q
}

func (w *WaitQueue) threads(key schedKey) []*Thread {
	var ts []*Thread
	for n := range w.locked(key).All() {
		ts = append(ts, n.Owner())
	}
	return ts
}

type waitqNode = waitq.Node[Thread]
