// Package script drives a wait queue from a small command language, one
// command per line or separated by ';':
//
//	insert NAME PRIO   link waiter NAME with priority PRIO
//	pop                unlink the foremost waiter and print it
//	peek               print the foremost waiter
//	remove NAME        unlink NAME
//	prio NAME PRIO     move NAME to its place for PRIO
//	empty              print whether the queue is empty
//	len                print the number of waiters
//	dump               print every waiter in service order
//	drain              unlink every waiter and print them in order
//
// '#' starts a comment that runs to the end of the line.
package script

import "strconv"

type OpKind int

const (
	OpInsert OpKind = iota
	OpPop
	OpPeek
	OpRemove
	OpPrio
	OpEmpty
	OpLen
	OpDump
	OpDrain
)

var kindNames = [...]string{
	OpInsert: "insert",
	OpPop:    "pop",
	OpPeek:   "peek",
	OpRemove: "remove",
	OpPrio:   "prio",
	OpEmpty:  "empty",
	OpLen:    "len",
	OpDump:   "dump",
	OpDrain:  "drain",
}

func (k OpKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "OpKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func lookupKind(word string) (OpKind, bool) {
	for k, name := range kindNames {
		if name == word {
			return OpKind(k), true
		}
	}
	return 0, false
}

func (k OpKind) takesName() bool {
	return k == OpInsert || k == OpRemove || k == OpPrio
}

func (k OpKind) takesPriority() bool {
	return k == OpInsert || k == OpPrio
}

// Op is one parsed command. Line is the 1-based line it started on.
type Op struct {
	Kind     OpKind
	Name     string
	Priority int
	Line     int
}

// String formats op the way Parse accepts it.
func (op Op) String() string {
	s := op.Kind.String()
	if op.Kind.takesName() {
		s += " " + op.Name
	}
	if op.Kind.takesPriority() {
		s += " " + strconv.Itoa(op.Priority)
	}
	return s
}

// Format renders ops as a script, one command per line.
func Format(ops []Op) string {
	var b []byte
	for _, op := range ops {
		b = append(b, op.String()...)
		b = append(b, '\n')
	}
	return string(b)
}
