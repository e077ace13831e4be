package remote

import (
	"encoding/binary"

	"github.com/seabrook/evalload/analysis"
	"github.com/seabrook/evalload/bytecode"
)

// Strategy is one way of defining compiled classes in the target process.
// The set is closed and consulted in registration order; narrower
// strategies must be registered before general-purpose fallbacks.
type Strategy interface {
	// Applicable reports whether this strategy can load the batch on the
	// given target. It is a pure predicate over the capability snapshot
	// and must not issue remote calls.
	Applicable(t Target, f analysis.Features) bool

	// Load defines every class in the batch and returns a class loader
	// scoped to them. Load is called at most once per batch and never
	// retries; retry policy belongs to the caller.
	Load(t Target, classes []*bytecode.CompiledClass) (ClassLoaderRef, error)
}

// defineClasses is the shared load path: create a loader, retain it,
// materialize each class's (possibly transformed) bytes, define the class.
func defineClasses(t Target, classes []*bytecode.CompiledClass, transform func([]byte) []byte) (ClassLoaderRef, error) {
	loader, err := t.NewClassLoader()
	if err != nil {
		return nil, &LoadError{Op: "create class loader", Err: err}
	}
	if err := t.Retain(loader); err != nil {
		return nil, &LoadError{Op: "retain class loader", Err: err}
	}

	for _, c := range classes {
		data := c.Bytes
		if transform != nil {
			data = transform(data)
		}
		arr, err := MaterializeByteArray(t, data)
		if err != nil {
			return nil, &LoadError{Class: c.Name, Op: "materialize bytes for", Err: err}
		}
		if err := t.DefineClass(loader, c.Name, arr); err != nil {
			return nil, &LoadError{Class: c.Name, Op: "define", Err: err}
		}
	}
	return loader, nil
}

// GeneralStrategy loads classes on any target that accepts class
// definitions from raw bytes, the common case for standard managed
// runtimes.
type GeneralStrategy struct{}

// Applicable implements Strategy.
func (GeneralStrategy) Applicable(t Target, _ analysis.Features) bool {
	return t.Capabilities().CanDefineClasses
}

// Load implements Strategy.
func (GeneralStrategy) Load(t Target, classes []*bytecode.CompiledClass) (ClassLoaderRef, error) {
	return defineClasses(t, classes, nil)
}

// CompactStrategy loads classes on compact-platform targets, which reject
// class files newer than the version their verifier understands. Class
// bytes are converted before transfer: the class-file version is clamped to
// the platform's maximum.
type CompactStrategy struct{}

// Applicable implements Strategy.
func (CompactStrategy) Applicable(t Target, _ analysis.Features) bool {
	caps := t.Capabilities()
	return caps.CanDefineClasses && caps.Platform == PlatformCompact
}

// Load implements Strategy.
func (CompactStrategy) Load(t Target, classes []*bytecode.CompiledClass) (ClassLoaderRef, error) {
	limit := t.Capabilities().MaxClassFileMajor
	return defineClasses(t, classes, func(data []byte) []byte {
		return clampClassFileVersion(data, limit)
	})
}

// clampClassFileVersion lowers a class file's major version to limit. The
// input is never mutated; a copy is returned when a rewrite is needed.
// Buffers too short to carry a version, and files already at or below the
// limit, pass through unchanged.
func clampClassFileVersion(data []byte, limit uint16) []byte {
	if limit == 0 || len(data) < 8 {
		return data
	}
	// magic u4, minor u2, major u2
	if binary.BigEndian.Uint16(data[6:8]) <= limit {
		return data
	}
	out := make([]byte, len(data))
	copy(out, data)
	binary.BigEndian.PutUint16(out[6:8], limit)
	return out
}
