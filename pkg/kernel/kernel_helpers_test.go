package kernel

import (
	"context"
	"testing"
)

// runMain runs body in a thread that outranks every other thread, so the
// rest only run while it is blocked or after it returns.
func runMain(k *Kernel, body func(self *Thread)) {
	k.Spawn("main", HighestPriority, body)
	k.Wait()
}

// settle blocks self until every thread readied before it has run and
// blocked or exited.
func settle(t *testing.T, k *Kernel, self *Thread) {
	gate, err := k.NewSemaphore("settle", 0, 1)
	if err != nil {
		t.Errorf("settle: %v", err)
		return
	}
	k.Spawn("settle", LowestPriority, func(st *Thread) {
		gate.Give(st)
	})
	if err := gate.Take(context.Background(), self); err != nil {
		t.Errorf("settle: %v", err)
	}
}

// recorder collects names in the order threads report them. Threads
// only run one at a time, so it needs no locking.
type recorder struct {
	names []string
}

func (r *recorder) add(name string) {
	r.names = append(r.names, name)
}

func names(ts []*Thread) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name())
	}
	return out
}

// newSem is called from kernel threads, where t.Fatal must not be used.
func newSem(k *Kernel, name string, initial, limit uint) *Semaphore {
	s, err := k.NewSemaphore(name, initial, limit)
	if err != nil {
		panic(err)
	}
	return s
}
