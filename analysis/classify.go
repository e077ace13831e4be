// Package analysis decides whether compiled expression classes are safe to
// run in the debugger's lightweight interpreter. It walks a method's decoded
// instruction stream and reports the features the interpreter cannot
// execute; any reported feature forces the class-loading path into the
// target process instead.
package analysis

import "github.com/seabrook/evalload/bytecode"

// Features summarizes what the classifier found in a batch of compiled
// classes. The zero value means the lightweight interpreter can run the
// code directly.
type Features struct {
	// BackwardJump is set when any branch targets a label that was already
	// visited earlier in the stream. This is the loop heuristic: every
	// backward branch counts, whether or not it can execute more than once.
	BackwardJump bool

	// Unsupported is set for constructs the interpreter never handles:
	// synchronized methods, monitorenter/monitorexit, and multi-way
	// switches.
	Unsupported bool

	// Auxiliary is set when the batch contains more than one class. Such
	// batches are never analyzed at the instruction level.
	Auxiliary bool
}

// RequiresLoading reports whether the classes must be defined in the target
// process rather than interpreted.
func (f Features) RequiresLoading() bool {
	return f.BackwardJump || f.Unsupported || f.Auxiliary
}

// Classify inspects one decoded class and returns the features of its named
// entry method. A nil class, or a class without the entry method, counts as
// an empty instruction stream and yields the zero Features.
//
// Classify is total: it never fails, and it visits each instruction at most
// once regardless of method length.
func Classify(class *bytecode.Class, entryMethod string) Features {
	var f Features
	if class == nil {
		return f
	}

	// A synchronized method anywhere in the class disqualifies it outright;
	// the instruction walk is skipped entirely.
	for _, m := range class.Methods {
		if m.IsSynchronized() {
			f.Unsupported = true
			return f
		}
	}

	method := class.Method(entryMethod)
	if method == nil {
		return f
	}

	visited := make(map[*bytecode.Label]bool)
	for _, insn := range method.Instructions {
		switch insn := insn.(type) {
		case bytecode.Mark:
			visited[insn.Label] = true
		case bytecode.Jump:
			if visited[insn.Target] {
				f.BackwardJump = true
			}
		case bytecode.TableSwitch, bytecode.LookupSwitch:
			f.Unsupported = true
		case bytecode.Op:
			if insn.Code == bytecode.OpMonitorEnter || insn.Code == bytecode.OpMonitorExit {
				f.Unsupported = true
			}
		}
		if f.BackwardJump && f.Unsupported {
			break
		}
	}
	return f
}
