package ledger

import "fmt"

// PersistenceError reports a failed durable read or write. After a failed
// write the in-memory mutation has already been rolled back, so memory and
// durable state still agree.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CorruptStateError means stored data failed to parse at startup. It is fatal:
// the ledger must not run on a partially-understood collection, and never
// repairs or discards the stored value on its own.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt ledger data under key %q: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
