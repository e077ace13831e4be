// Package bytecode models the decoded instruction stream of a compiled
// method, as handed to the debugger's expression-evaluation machinery by the
// class-file decoder. The model is deliberately coarse: labels, branches,
// multi-way switches, and monitor operations are distinguished; every other
// instruction is an opaque Op node. That is exactly the granularity the
// classifier needs to decide between interpreting a method and loading it
// into the target process.
package bytecode

// EvalMethodName is the name of the single method the expression compiler
// generates into an entry class.
const EvalMethodName = "evaluate"

// Method access flags, as in the class-file format.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSynchronized = 0x0020
	AccBridge       = 0x0040
	AccVarargs      = 0x0080
	AccNative       = 0x0100
	AccAbstract     = 0x0400
	AccSynthetic    = 0x1000
)

// Label identifies a control-flow position in a method's instruction
// stream. Labels compare by identity: the decoder allocates exactly one
// Label per distinct target, so two branches to the same position carry the
// same *Label.
type Label struct {
	id int
}

// Instruction is one element of a decoded instruction stream.
type Instruction interface {
	instruction()
}

// Mark pins a Label to its position in the stream. A branch whose target's
// Mark appears earlier in the stream is a backward branch.
type Mark struct {
	Label *Label
}

// Jump is a conditional or unconditional branch to a single target.
type Jump struct {
	Code   Opcode
	Target *Label
}

// TableSwitch is a dense multi-way branch over the range [Low, High].
type TableSwitch struct {
	Low     int32
	High    int32
	Default *Label
	Targets []*Label
}

// LookupSwitch is a sparse multi-way branch over explicit keys.
type LookupSwitch struct {
	Keys    []int32
	Default *Label
	Targets []*Label
}

// Op is any instruction the model does not decode further.
type Op struct {
	Code Opcode
}

func (Mark) instruction()         {}
func (Jump) instruction()         {}
func (TableSwitch) instruction()  {}
func (LookupSwitch) instruction() {}
func (Op) instruction()           {}

// Method is one decoded method body.
type Method struct {
	Name         string
	Descriptor   string
	Flags        uint16
	Instructions []Instruction
}

// IsSynchronized reports whether the method carries the synchronized
// access flag.
func (m *Method) IsSynchronized() bool {
	return m.Flags&AccSynchronized != 0
}

// Class is the decoded form of one compiled class.
type Class struct {
	Name    string
	Methods []*Method
}

// Method returns the named method, or nil if the class has none.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// CompiledClass is one class produced by the expression compiler. Bytes is
// the raw class file; Definition is the decoded form, present only when the
// caller decoded it (the selector treats a nil Definition as an empty
// instruction stream). Exactly one class in a batch should carry Entry.
type CompiledClass struct {
	Name       string
	Bytes      []byte
	Entry      bool
	Definition *Class
}
