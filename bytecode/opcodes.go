package bytecode

import "fmt"

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode is a single JVM instruction opcode. Only the opcodes the
// classifier distinguishes get named constants; everything else travels
// through the model as a plain Op node with its raw opcode byte.
type Opcode byte

// Conditional branches
const (
	OpIfEq      Opcode = 0x99 // branch if int == 0
	OpIfNe      Opcode = 0x9a // branch if int != 0
	OpIfLt      Opcode = 0x9b // branch if int < 0
	OpIfGe      Opcode = 0x9c // branch if int >= 0
	OpIfGt      Opcode = 0x9d // branch if int > 0
	OpIfLe      Opcode = 0x9e // branch if int <= 0
	OpIfICmpEq  Opcode = 0x9f // branch if int comparison ==
	OpIfICmpNe  Opcode = 0xa0 // branch if int comparison !=
	OpIfICmpLt  Opcode = 0xa1 // branch if int comparison <
	OpIfICmpGe  Opcode = 0xa2 // branch if int comparison >=
	OpIfICmpGt  Opcode = 0xa3 // branch if int comparison >
	OpIfICmpLe  Opcode = 0xa4 // branch if int comparison <=
	OpIfACmpEq  Opcode = 0xa5 // branch if references equal
	OpIfACmpNe  Opcode = 0xa6 // branch if references differ
	OpIfNull    Opcode = 0xc6 // branch if reference is null
	OpIfNonNull Opcode = 0xc7 // branch if reference is not null
)

// Unconditional branches
const (
	OpGoto  Opcode = 0xa7 // jump
	OpJsr   Opcode = 0xa8 // jump to subroutine
	OpGotoW Opcode = 0xc8 // jump, wide offset
	OpJsrW  Opcode = 0xc9 // jump to subroutine, wide offset
)

// Multi-way branches
const (
	OpTableSwitch  Opcode = 0xaa // dense jump table
	OpLookupSwitch Opcode = 0xab // sparse key/offset table
)

// Synchronization
const (
	OpMonitorEnter Opcode = 0xc2 // acquire object monitor
	OpMonitorExit  Opcode = 0xc3 // release object monitor
)

var opcodeNames = map[Opcode]string{
	OpIfEq:      "ifeq",
	OpIfNe:      "ifne",
	OpIfLt:      "iflt",
	OpIfGe:      "ifge",
	OpIfGt:      "ifgt",
	OpIfLe:      "ifle",
	OpIfICmpEq:  "if_icmpeq",
	OpIfICmpNe:  "if_icmpne",
	OpIfICmpLt:  "if_icmplt",
	OpIfICmpGe:  "if_icmpge",
	OpIfICmpGt:  "if_icmpgt",
	OpIfICmpLe:  "if_icmple",
	OpIfACmpEq:  "if_acmpeq",
	OpIfACmpNe:  "if_acmpne",
	OpIfNull:    "ifnull",
	OpIfNonNull: "ifnonnull",

	OpGoto:  "goto",
	OpJsr:   "jsr",
	OpGotoW: "goto_w",
	OpJsrW:  "jsr_w",

	OpTableSwitch:  "tableswitch",
	OpLookupSwitch: "lookupswitch",

	OpMonitorEnter: "monitorenter",
	OpMonitorExit:  "monitorexit",
}

// String implements the Stringer interface.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op_%02x", byte(op))
}

// IsBranch reports whether the opcode transfers control to a label.
func (op Opcode) IsBranch() bool {
	switch {
	case op >= OpIfEq && op <= OpIfACmpNe:
		return true
	case op == OpGoto || op == OpJsr:
		return true
	case op == OpIfNull || op == OpIfNonNull:
		return true
	case op == OpGotoW || op == OpJsrW:
		return true
	}
	return false
}
