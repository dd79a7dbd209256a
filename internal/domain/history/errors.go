package history

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidTable = errors.New("invalid history table")
)
