package vm

import (
	"errors"
	"fmt"
)

// Runtime error kinds. They are always returned wrapped in a *RuntimeError.
var (
	ErrDataPointerBelowZero       = errors.New("data pointer below zero")
	ErrDataPointerBeyondBounds    = errors.New("data pointer beyond bounds")
	ErrCannotReadEmptyInputBuffer = errors.New("cannot read empty input buffer")
)

// Usage errors
var (
	ErrInvalidTapeSize   = errors.New("tape size must be positive")
	ErrProgramTerminated = errors.New("program has terminated")
	ErrNilProgram        = errors.New("nil program")
)

// RuntimeError reports a fault raised while executing an instruction.
//
// IP follows the convention of the faulting check: for pointer bounds it is
// the already-advanced instruction pointer, for input it is the pointer of
// the GET instruction itself.
type RuntimeError struct {
	Err error
	IP  int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%v (ip %d)", e.Err, e.IP)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func newRuntimeError(err error, ip int) *RuntimeError {
	return &RuntimeError{Err: err, IP: ip}
}
