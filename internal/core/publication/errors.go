package publication

import (
	"errors"
	"fmt"
)

// ErrPageOutOfOrder marks a page whose items are not newest-first.
var ErrPageOutOfOrder = errors.New("page items are not in reverse-chronological order")

// OrderError identifies the first pair of items that broke page ordering.
type OrderError struct {
	Page     int
	Position int
	ID       string
	Previous string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("page %d: item %s at position %d is newer than preceding item %s",
		e.Page, e.ID, e.Position, e.Previous)
}

func (e *OrderError) Unwrap() error {
	return ErrPageOutOfOrder
}
