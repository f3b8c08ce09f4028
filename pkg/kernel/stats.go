package kernel

import "go.uber.org/atomic"

type counters struct {
	pends    atomic.Uint64
	wakes    atomic.Uint64
	timeouts atomic.Uint64
	aborts   atomic.Uint64
	switches atomic.Uint64
	boosts   atomic.Uint64
}

// Stats holds scheduling statistics.
type Stats struct {
	Pends    uint64 // threads that blocked on a wait queue
	Wakes    uint64 // waits ended by a wake
	Timeouts uint64 // waits ended by their context
	Aborts   uint64
	Switches uint64 // CPU hand-offs, including the first dispatch
	Boosts   uint64 // priority inheritance raises
}

func (k *Kernel) GetStats() Stats {
	return Stats{
		Pends:    k.pends.Load(),
		Wakes:    k.wakes.Load(),
		Timeouts: k.timeouts.Load(),
		Aborts:   k.aborts.Load(),
		Switches: k.switches.Load(),
		Boosts:   k.boosts.Load(),
	}
}
