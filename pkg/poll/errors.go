package poll

import (
	"errors"
	"fmt"
)

// ErrListItems wraps any failure returned by the Lister.
var ErrListItems = errors.New("list items")

// ProcessError reports the item whose processing aborted the iteration.
type ProcessError struct {
	Item Item
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process item %d: %v", e.Item, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
