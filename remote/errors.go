package remote

import "fmt"

// LoadError reports a failed remote class-load attempt. Any capability call
// that fails mid-load aborts the whole attempt; values already written into
// the target are not rolled back, they are discarded with the attempt.
type LoadError struct {
	Class string // class being loaded, if known
	Op    string // capability operation that failed
	Err   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("remote: %s %s: %v", e.Op, e.Class, e.Err)
	}
	return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying capability error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
