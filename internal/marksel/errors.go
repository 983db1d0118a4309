package marksel

import (
	"errors"
	"fmt"
)

// ErrEmptySelection indicates a mutation was attempted on a view with no
// spans at all.
var ErrEmptySelection = errors.New("marksel: empty selection")

// InvariantError is the panic value raised when a host breaks the selection
// contract.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("marksel: %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
