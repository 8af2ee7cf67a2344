package receipt

import (
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

// Validator performs structural completeness checks on incoming receipts.
// It rejects missing or empty fields and empty item lists; it never
// attempts numeric or date parsing, so a malformed-but-present total is
// not its problem.
type Validator struct {
	v *validatorv10.Validate
}

// NewValidator returns a configured receipt validator.
func NewValidator() *Validator {
	return &Validator{v: validatorv10.New()}
}

// Validate checks r against the structural rules. On failure it returns
// an error wrapping ErrInvalid that names the offending fields.
func (val *Validator) Validate(r *Receipt) error {
	if r == nil {
		return fmt.Errorf("%w: receipt is nil", ErrInvalid)
	}
	if err := val.v.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, fieldSummary(err))
	}
	return nil
}

// fieldSummary flattens validator.v10 field errors into a short,
// client-readable list of failing field paths.
func fieldSummary(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var out string
	for i, fe := range ve {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s is missing or empty", fe.StructNamespace())
	}
	return out
}
