// Package remote loads compiled expression classes into the target process
// of a debug session. It decides which loading strategy fits the target,
// pushes class bytes across the debugging connection in bounded chunks, and
// returns a class-loader handle the caller can invoke loaded code through.
//
// The package never executes anything in the target and never releases the
// references it retains; the debug session owns cleanup.
package remote

import "io"

// Value is a mirror of a primitive value in the target's wire
// representation. Values are produced by the Target and are opaque here;
// the remote write operation only accepts values already in mirror form.
type Value interface{}

// ObjectRef is a handle to an object living in the target process.
type ObjectRef interface {
	// ID is the target-side object identifier.
	ID() uint64
}

// TypeRef is a handle to a type resolved in the target process.
type TypeRef interface {
	// Name is the JVM signature the type was resolved under.
	Name() string
}

// ArrayRef is a handle to an array object in the target process.
type ArrayRef interface {
	ObjectRef

	// SetValues writes count mirror values from values[valueOffset:] into
	// the remote array starting at offset. One call maps to one remote
	// write operation.
	SetValues(offset int, values []Value, valueOffset, count int) error
}

// ClassLoaderRef is a handle to a class loader in the target process.
// Ownership transfers to the caller on a successful load.
type ClassLoaderRef interface {
	ObjectRef
}

// Platform describes the target process's runtime platform.
type Platform int

const (
	// PlatformStandard is a full managed runtime that accepts class
	// definitions from raw bytes as-is.
	PlatformStandard Platform = iota

	// PlatformCompact is a constrained runtime that restricts dynamic
	// class definition and needs classes converted before loading.
	PlatformCompact
)

// String implements the Stringer interface.
func (p Platform) String() string {
	switch p {
	case PlatformStandard:
		return "standard"
	case PlatformCompact:
		return "compact"
	}
	return "unknown"
}

// Capabilities is a snapshot of what the target process supports. Strategy
// applicability is decided from this snapshot alone, without remote calls.
type Capabilities struct {
	CanDefineClasses  bool
	Platform          Platform
	MaxClassFileMajor uint16 // highest class-file major version accepted; 0 = no limit
}

// Target is the capability surface of the process being debugged. Every
// method that touches the target is a blocking remote call over the
// debugging connection; timeouts and cancellation are the caller's concern.
type Target interface {
	// Capabilities returns the target's capability snapshot.
	Capabilities() Capabilities

	// ResolveType looks up a type in the target by JVM signature.
	ResolveType(name string) (TypeRef, error)

	// NewArray allocates an array of the given element type and length in
	// the target.
	NewArray(elem TypeRef, length int) (ArrayRef, error)

	// MirrorByte converts one byte into the target's mirror representation.
	MirrorByte(b byte) Value

	// Retain pins a remote object so the target's garbage collector cannot
	// reclaim it. Retained references live until the session ends.
	Retain(obj ObjectRef) error

	// NewClassLoader creates a fresh class loader in the target.
	NewClassLoader() (ClassLoaderRef, error)

	// DefineClass defines one class from a previously materialized byte
	// array, scoped to the given loader.
	DefineClass(loader ClassLoaderRef, name string, data ArrayRef) error

	// Connection exposes the underlying debugging connection.
	Connection() io.Closer
}
