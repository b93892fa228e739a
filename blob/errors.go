package blob

import "fmt"

var (
	// ErrNotFound is returned when no blob exists for the given key.
	ErrNotFound = fmt.Errorf("blob not found")
)
