package remote

import (
	"github.com/seabrook/evalload/analysis"
	"github.com/seabrook/evalload/bytecode"
)

// Loader orchestrates a class-load request: find the entry class, classify
// it, then hand the batch to the first applicable strategy.
type Loader struct {
	strategies []Strategy
}

// NewLoader returns a Loader with the standard strategy set. Order is part
// of the contract: the compact-platform strategy is consulted before the
// general-purpose fallback.
func NewLoader() *Loader {
	return NewLoaderWith(CompactStrategy{}, GeneralStrategy{})
}

// NewLoaderWith returns a Loader consulting the given strategies in order.
func NewLoaderWith(strategies ...Strategy) *Loader {
	return &Loader{strategies: strategies}
}

// LoadClasses loads a batch of compiled classes into the target and returns
// a class-loader handle for them.
//
// A nil handle with a nil error means there is nothing to load: either no
// class in the batch is marked as the entry class, or no registered
// strategy applies to the target. In both cases no remote call is made and
// the caller is expected to fall back to the lightweight interpreter.
//
// Batches with more than one class are never analyzed at the instruction
// level; the auxiliary-classes feature alone routes them.
func (l *Loader) LoadClasses(t Target, classes []*bytecode.CompiledClass) (ClassLoaderRef, error) {
	var entry *bytecode.CompiledClass
	for _, c := range classes {
		if c.Entry {
			entry = c
			break
		}
	}
	if entry == nil {
		return nil, nil
	}

	var features analysis.Features
	if len(classes) > 1 {
		features.Auxiliary = true
	} else {
		features = analysis.Classify(entry.Definition, bytecode.EvalMethodName)
	}

	for _, s := range l.strategies {
		if s.Applicable(t, features) {
			return s.Load(t, classes)
		}
	}
	return nil, nil
}
