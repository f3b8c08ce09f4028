package kernel

import "go.uber.org/atomic"

type EventKind int

const (
	EventUnknown EventKind = iota
	EventPend
	EventWake
	EventTimeout
	EventAbort
	EventBoost
	EventSwitch
)

func (e EventKind) String() string {
	switch e {
	case EventPend:
		return "pend"
	case EventWake:
		return "wake"
	case EventTimeout:
		return "timeout"
	case EventAbort:
		return "abort"
	case EventBoost:
		return "boost"
	case EventSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// TraceEvent records one scheduling decision. Queue is empty for events
// that involve no wait queue.
type TraceEvent struct {
	Step     uint64
	Kind     EventKind
	Thread   uint64
	Name     string
	Priority int
	Queue    string
}

type tracer struct {
	traceBuf []TraceEvent
	traceCap uint64
	traceIdx atomic.Uint64
	traceOn  atomic.Bool
}

// EnableTrace starts recording up to capacity events, discarding any
// earlier trace. Events past capacity are dropped.
func (k *Kernel) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	key := k.lock()
	defer key.unlock()
	k.traceBuf = make([]TraceEvent, capacity)
	k.traceCap = uint64(capacity)
	k.traceIdx.Store(0)
	k.traceOn.Store(true)
}

func (k *Kernel) DisableTrace() {
	k.traceOn.Store(false)
}

// TraceSnapshot copies the events recorded so far. It returns nil while
// tracing is off.
func (k *Kernel) TraceSnapshot() []TraceEvent {
	if !k.traceOn.Load() {
		return nil
	}
	key := k.lock()
	defer key.unlock()
	count := k.traceIdx.Load()
	if count > k.traceCap {
		count = k.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, k.traceBuf[:count])
	return res
}

// recordTrace is called with the scheduler lock held.
func (k *Kernel) recordTrace(kind EventKind, t *Thread, wq *WaitQueue) {
	if !k.traceOn.Load() || k.traceCap == 0 {
		return
	}
	idx := k.traceIdx.Inc() - 1
	if idx >= k.traceCap {
		return
	}
	var queue string
	if wq != nil {
		queue = wq.name
	}
	k.traceBuf[idx] = TraceEvent{
		Step:     idx,
		Kind:     kind,
		Thread:   t.id,
		Name:     t.name,
		Priority: t.prio,
		Queue:    queue,
	}
}
