package kernel

// ThreadState is the scheduling state of a thread.
type ThreadState int

const (
	StateReady ThreadState = iota
	StateRunning
	StatePending
	StateDead
)

func (s ThreadState) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StatePending:
		return "Pending"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Thread is a kernel thread. Its wait node links it into the ready queue
// or into exactly one wait queue, never both.
type Thread struct {
	id    uint64
	name  string
	k     *Kernel
	entry func(*Thread)

	// Guarded by the scheduler lock.
	prio     int
	state    ThreadState
	wait     waitqNode
	pendedOn *WaitQueue
	pendGen  uint64
	wakeErr  error
	aborted  bool

	// resume carries the CPU to the thread.
	resume chan struct{}
}

func (t *Thread) run() {
	<-t.resume
	t.entry(t)
	t.k.exit(t)
}

// ID returns the thread's unique id.
func (t *Thread) ID() uint64 { return t.id }

// Name returns the name given to Spawn.
func (t *Thread) Name() string { return t.name }

// Priority returns the thread's current, possibly inherited, priority.
func (t *Thread) Priority() int {
	key := t.k.lock()
	defer key.unlock()
	return t.prio
}

// State returns the thread's scheduling state.
func (t *Thread) State() ThreadState {
	key := t.k.lock()
	defer key.unlock()
	return t.state
}
