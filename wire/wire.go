// Package wire speaks the capability protocol of the debugging connection.
// Each capability call goes out as one CBOR-encoded, length-prefixed command
// frame and blocks until the matching reply frame comes back. The package
// deliberately knows nothing about attaching, breakpoints, or event
// handling; it only moves capability calls and replies.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Op identifies a capability command.
type Op uint8

const (
	OpResolveType Op = 1 // look up a type by JVM signature
	OpNewArray    Op = 2 // allocate an array object
	OpWriteSlice  Op = 3 // write a slice of mirror values into an array
	OpRetain      Op = 4 // pin an object against collection
	OpNewLoader   Op = 5 // create a class loader
	OpDefineClass Op = 6 // define a class from a materialized byte array
)

// String implements the Stringer interface.
func (op Op) String() string {
	switch op {
	case OpResolveType:
		return "resolve-type"
	case OpNewArray:
		return "new-array"
	case OpWriteSlice:
		return "write-slice"
	case OpRetain:
		return "retain"
	case OpNewLoader:
		return "new-loader"
	case OpDefineClass:
		return "define-class"
	}
	return fmt.Sprintf("op-%d", uint8(op))
}

// Command is one capability call. Fields beyond Op and Seq are populated
// per operation.
type Command struct {
	Op     Op     `cbor:"1,keyasint"`
	Seq    uint32 `cbor:"2,keyasint"`
	Name   string `cbor:"3,keyasint,omitempty"` // type or class name
	Type   uint64 `cbor:"4,keyasint,omitempty"` // element type ref
	Length int    `cbor:"5,keyasint,omitempty"` // array length
	Object uint64 `cbor:"6,keyasint,omitempty"` // array or object ref
	Loader uint64 `cbor:"7,keyasint,omitempty"` // class loader ref
	Offset int    `cbor:"8,keyasint,omitempty"` // array write offset
	Values []byte `cbor:"9,keyasint,omitempty"` // mirror values, one per byte
}

// Status is the outcome of a command.
type Status uint8

const (
	StatusOK    Status = 0
	StatusError Status = 1
)

// Reply answers one Command, matched by sequence number.
type Reply struct {
	Seq    uint32 `cbor:"1,keyasint"`
	Status Status `cbor:"2,keyasint"`
	Object uint64 `cbor:"3,keyasint,omitempty"` // created or resolved ref
	Err    string `cbor:"4,keyasint,omitempty"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalCommand serializes a Command to CBOR bytes.
func MarshalCommand(c *Command) ([]byte, error) {
	return cborEncMode.Marshal(c)
}

// UnmarshalCommand deserializes a Command from CBOR bytes.
func UnmarshalCommand(data []byte) (*Command, error) {
	var c Command
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("wire: unmarshal command: %w", err)
	}
	return &c, nil
}

// MarshalReply serializes a Reply to CBOR bytes.
func MarshalReply(r *Reply) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalReply deserializes a Reply from CBOR bytes.
func UnmarshalReply(data []byte) (*Reply, error) {
	var r Reply
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wire: unmarshal reply: %w", err)
	}
	return &r, nil
}

// maxFrameSize bounds a single frame. Array writes carry at most 4096
// mirror values, so well-formed frames stay far below this.
const maxFrameSize = 1 << 20

// WriteFrame writes one length-prefixed frame.
func WriteFrame(w io.Writer, data []byte) error {
	if len(data) > maxFrameSize {
		return fmt.Errorf("wire: frame of %d bytes exceeds limit", len(data))
	}
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(data)))
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("wire: write frame prefix: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("wire: write frame body: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("wire: read frame prefix: %w", err)
	}
	n := binary.BigEndian.Uint32(prefix[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("wire: frame of %d bytes exceeds limit", n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("wire: read frame body: %w", err)
	}
	return data, nil
}
