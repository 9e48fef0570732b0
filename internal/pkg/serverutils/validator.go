package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO. The returned
// error is a validator.ValidationErrors, mapped to 400 by the error handler.
func ValidateRequest(s interface{}) error {
	return validate.Struct(s)
}
