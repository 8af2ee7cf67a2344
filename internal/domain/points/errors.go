package points

import (
	"fmt"

	"github.com/okian/tally/internal/domain/receipt"
)

// ParseError reports a receipt field whose text could not be parsed as
// the decimal, date, or clock value the rules expect. It unwraps to
// receipt.ErrInvalid: malformed field text is indistinguishable from an
// invalid receipt at the service boundary.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid receipt: malformed %s: %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return receipt.ErrInvalid
}
