package receipt

import "errors"

// Sentinel kinds for receipt errors.
var (
	// ErrInvalid marks a receipt that failed structural validation or
	// carried field text the points engine could not parse. Callers map
	// it to a client-input failure.
	ErrInvalid = errors.New("invalid receipt")
)
