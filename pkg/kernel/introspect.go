package kernel

import (
	"cmp"
	"slices"
	"strings"
)

// ThreadInfo describes one live thread at the time of a Snapshot.
type ThreadInfo struct {
	ID       uint64
	Name     string
	Priority int
	State    ThreadState
	// BlockedOn names the object a pending thread waits on.
	BlockedOn string
	// Position is the thread's place in its wait queue, counting from
	// 0, or -1 when it is not pending.
	Position int
}

func (ti ThreadInfo) String() string {
	var sb strings.Builder
	sb.WriteString(ti.Name)
	sb.WriteString(" ")
	sb.WriteString(ti.State.String())
	if ti.BlockedOn != "" {
		sb.WriteString(" on ")
		sb.WriteString(ti.BlockedOn)
	}
	return sb.String()
}

// Snapshot describes every live thread, in id order.
func (k *Kernel) Snapshot() []ThreadInfo {
	key := k.lock()
	defer key.unlock()

	infos := make([]ThreadInfo, 0, len(k.threads))
	for _, t := range k.sortedThreads() {
		info := ThreadInfo{
			ID:       t.id,
			Name:     t.name,
			Priority: t.prio,
			State:    t.state,
			Position: -1,
		}
		if wq := t.pendedOn; wq != nil {
			info.BlockedOn = wq.name
			pos := 0
			wq.locked(key).ForEach(func(n *waitqNode) bool {
				if n.Owner() == t {
					info.Position = pos
					return false
				}
				pos++
				return true
			})
		}
		infos = append(infos, info)
	}
	return infos
}

func (k *Kernel) sortedThreads() []*Thread {
	ts := make([]*Thread, 0, len(k.threads))
	for _, t := range k.threads {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b *Thread) int {
		return cmp.Compare(a.id, b.id)
	})
	return ts
}

// DetectDeadlock returns the threads of a cycle of mutex waits, starting
// from the lowest id that reaches one, or nil if there is none.
func (k *Kernel) DetectDeadlock() []*Thread {
	key := k.lock()
	defer key.unlock()

	done := make(map[*Thread]bool)
	for _, start := range k.sortedThreads() {
		var path []*Thread
		onPath := make(map[*Thread]int)
		for t := start; t != nil && !done[t]; t = blockingOwner(t) {
			if i, ok := onPath[t]; ok {
				return path[i:]
			}
			onPath[t] = len(path)
			path = append(path, t)
		}
		for _, t := range path {
			done[t] = true
		}
	}
	return nil
}

// blockingOwner returns the owner of the mutex t waits on, if any.
func blockingOwner(t *Thread) *Thread {
	if t.state != StatePending || t.pendedOn == nil || t.pendedOn.mutex == nil {
		return nil
	}
	return t.pendedOn.mutex.owner
}
