package kinship

import (
	"errors"
	"fmt"
)

// Sentinel errors for relationship queries.
var (
	// ErrNotFound is returned when no path connects the two people, or when
	// either ID is not part of the tree. Callers map it to a 404-style answer.
	ErrNotFound = errors.New("no relationship path found")

	// ErrInvalidQuery is returned when both sides of a query are the same
	// person. It wraps ErrNotFound, so errors.Is(err, ErrNotFound) also holds.
	ErrInvalidQuery = fmt.Errorf("%w: both sides are the same person", ErrNotFound)
)
