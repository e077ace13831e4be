package bytecode

// ---------------------------------------------------------------------------
// StreamBuilder: helper for constructing instruction streams
// ---------------------------------------------------------------------------

// StreamBuilder assembles an instruction stream. The class-file decoder uses
// it while walking a Code attribute; tests use it to lay out control-flow
// shapes directly.
type StreamBuilder struct {
	instructions []Instruction
	nextLabel    int
}

// NewStreamBuilder creates an empty builder.
func NewStreamBuilder() *StreamBuilder {
	return &StreamBuilder{
		instructions: make([]Instruction, 0, 16),
	}
}

// NewLabel allocates a fresh, unmarked label.
func (b *StreamBuilder) NewLabel() *Label {
	b.nextLabel++
	return &Label{id: b.nextLabel}
}

// Mark pins a label to the current position.
func (b *StreamBuilder) Mark(label *Label) {
	b.instructions = append(b.instructions, Mark{Label: label})
}

// Jump appends a branch to the given target.
func (b *StreamBuilder) Jump(op Opcode, target *Label) {
	b.instructions = append(b.instructions, Jump{Code: op, Target: target})
}

// TableSwitch appends a dense multi-way branch.
func (b *StreamBuilder) TableSwitch(low, high int32, def *Label, targets ...*Label) {
	b.instructions = append(b.instructions, TableSwitch{
		Low:     low,
		High:    high,
		Default: def,
		Targets: targets,
	})
}

// LookupSwitch appends a sparse multi-way branch.
func (b *StreamBuilder) LookupSwitch(keys []int32, def *Label, targets ...*Label) {
	b.instructions = append(b.instructions, LookupSwitch{
		Keys:    keys,
		Default: def,
		Targets: targets,
	})
}

// Op appends an opaque instruction.
func (b *StreamBuilder) Op(op Opcode) {
	b.instructions = append(b.instructions, Op{Code: op})
}

// Instructions returns the assembled stream.
func (b *StreamBuilder) Instructions() []Instruction {
	return b.instructions
}

// Method wraps the assembled stream in a Method with the given name and
// flags.
func (b *StreamBuilder) Method(name string, flags uint16) *Method {
	return &Method{
		Name:         name,
		Descriptor:   "()Ljava/lang/Object;",
		Flags:        flags,
		Instructions: b.instructions,
	}
}
