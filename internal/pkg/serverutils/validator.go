package serverutils

import (
	"fmt"

	"conote-be/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a client-facing Validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return apperrors.Validation(
			"invalid_request",
			fmt.Sprintf("field %s failed on %s", first.Field(), first.Tag()),
		)
	}
	return apperrors.Validation("invalid_request", "request validation failed")
}
