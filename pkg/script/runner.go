package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vic/waitq/pkg/waitq"
)

var (
	ErrUnknownWaiter = errors.New("script: unknown waiter")
	ErrLinked        = errors.New("script: waiter already queued")
	ErrNotLinked     = errors.New("script: waiter not queued")
)

// Waiter is a named record that can wait in a queue.
type Waiter struct {
	Name string
	node waitq.Node[Waiter]
}

// Stats counts what a run did.
type Stats struct {
	Inserts       int
	Pops          int
	Removes       int
	Reprioritizes int
	MaxLen        int
}

// Runner executes ops against one queue. Waiters are created on their
// first insert and live as long as the Runner.
type Runner struct {
	q       waitq.Backend[Waiter]
	waiters map[string]*Waiter
	linked  int
	out     *bufio.Writer
	stats   Stats
}

func NewRunner(q waitq.Backend[Waiter], out io.Writer) *Runner {
	return &Runner{
		q:       q,
		waiters: make(map[string]*Waiter),
		out:     bufio.NewWriter(out),
	}
}

// Run executes ops in order, stopping at the first misuse. Output written
// before the failing op is flushed either way.
func (r *Runner) Run(ops []Op) error {
	for _, op := range ops {
		if err := r.exec(op); err != nil {
			r.out.Flush()
			return fmt.Errorf("line %d: %s: %w", op.Line, op, err)
		}
	}
	return r.out.Flush()
}

func (r *Runner) Stats() Stats {
	return r.stats
}

// Run parses and executes input against q in one go.
func Run(q waitq.Backend[Waiter], input string, out io.Writer) (Stats, error) {
	ops, err := Parse(input)
	if err != nil {
		return Stats{}, err
	}
	r := NewRunner(q, out)
	err = r.Run(ops)
	return r.Stats(), err
}

func (r *Runner) exec(op Op) error {
	switch op.Kind {
	case OpInsert:
		w := r.waiters[op.Name]
		if w == nil {
			w = &Waiter{Name: op.Name}
			w.node.Init(w)
			r.waiters[op.Name] = w
		}
		if w.node.IsLinked() {
			return ErrLinked
		}
		r.q.Insert(&w.node, op.Priority)
		r.linked++
		r.stats.Inserts++
		r.stats.MaxLen = max(r.stats.MaxLen, r.linked)

	case OpPop:
		n := r.q.PopHead()
		if n != nil {
			r.linked--
			r.stats.Pops++
		}
		r.printNode("pop", n)

	case OpPeek:
		r.printNode("peek", r.q.PeekHead())

	case OpRemove:
		w, err := r.linkedWaiter(op.Name)
		if err != nil {
			return err
		}
		r.q.Remove(&w.node)
		r.linked--
		r.stats.Removes++

	case OpPrio:
		w, err := r.linkedWaiter(op.Name)
		if err != nil {
			return err
		}
		r.q.Reprioritize(&w.node, op.Priority)
		r.stats.Reprioritizes++

	case OpEmpty:
		fmt.Fprintln(r.out, "empty", r.q.IsEmpty())

	case OpLen:
		fmt.Fprintln(r.out, "len", r.q.Len())

	case OpDump:
		r.out.WriteString("dump")
		r.q.ForEach(func(n *waitq.Node[Waiter]) bool {
			r.writeEntry(n)
			return true
		})
		r.out.WriteByte('\n')

	case OpDrain:
		r.out.WriteString("drain")
		r.q.Drain(func(n *waitq.Node[Waiter]) {
			r.writeEntry(n)
			r.linked--
			r.stats.Pops++
		})
		r.out.WriteByte('\n')

	default:
		return fmt.Errorf("unknown op kind %d", op.Kind)
	}
	return nil
}

func (r *Runner) linkedWaiter(name string) (*Waiter, error) {
	w := r.waiters[name]
	if w == nil {
		return nil, ErrUnknownWaiter
	}
	if !w.node.IsLinked() {
		return nil, ErrNotLinked
	}
	return w, nil
}

func (r *Runner) printNode(verb string, n *waitq.Node[Waiter]) {
	if n == nil {
		fmt.Fprintln(r.out, verb, "-")
		return
	}
	fmt.Fprintln(r.out, verb, n.Owner().Name, n.Priority())
}

func (r *Runner) writeEntry(n *waitq.Node[Waiter]) {
	r.out.WriteByte(' ')
	r.out.WriteString(n.Owner().Name)
	r.out.WriteByte(':')
	r.out.WriteString(strconv.Itoa(n.Priority()))
}
