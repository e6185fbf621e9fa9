package engine

import (
	"strings"

	"github.com/bamsammich/dirsync/internal/oplog"
)

// Action is one name to bring into the replica and the operation it is
// logged under.
type Action struct {
	Name string
	Op   oplog.Operation
}

// Plan is the work for one tick: names to create in the replica and names
// to remove from it.
type Plan struct {
	Create []Action
	Delete []string
}

// Diff computes the plan that makes dst's name set equal to src's. Names
// are compared case-sensitively and nothing but the name is looked at.
func Diff(src, dst Snapshot) Plan {
	var p Plan
	for _, name := range src.Minus(dst) {
		p.Create = append(p.Create, Action{Name: name, Op: Classify(name)})
	}
	p.Delete = dst.Minus(src)
	return p
}

// Classify tags a newly appearing name as a copy when it contains "copy"
// or "Copy". It is a naming heuristic for the log only; the entry is
// transferred the same way either way.
func Classify(name string) oplog.Operation {
	if strings.Contains(name, "copy") || strings.Contains(name, "Copy") {
		return oplog.Copy
	}
	return oplog.Create
}

// Empty reports whether the plan has nothing to do.
func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Delete) == 0
}

// Copies returns the number of create actions tagged as copies.
func (p Plan) Copies() int {
	n := 0
	for _, a := range p.Create {
		if a.Op == oplog.Copy {
			n++
		}
	}
	return n
}
