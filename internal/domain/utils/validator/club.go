package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mozteach/teach-api/internal/domain/dto"
)

var validate = validator.New()

// ClubCreate checks the create payload and returns a field -> messages
// map matching the API's validation error body. An empty map means the
// payload is valid.
func ClubCreate(payload dto.ClubCreate) map[string][]string {
	fieldErrors := make(map[string][]string)

	err := validate.Struct(payload)
	if err == nil {
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["non_field_errors"] = []string{"Invalid payload."}
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		message := "This field is invalid."
		if fieldError.Tag() == "required" {
			message = "This field is required."
		}
		fieldErrors[field] = append(fieldErrors[field], message)
	}

	return fieldErrors
}
