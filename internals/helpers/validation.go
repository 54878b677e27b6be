package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationFields flattens validator.v10 errors into the field→tags map
// used by JsonValidationError.
func ValidationFields(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}
