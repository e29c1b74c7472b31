package app

import "fmt"

// OpError is a storage failure reported to the user for one intent.
type OpError struct {
	Op  string // load, add, update or delete
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }
