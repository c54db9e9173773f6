package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// employeeId -> employee Id -> Employee Id; start_date -> Start Date
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapBindingError converts a gin binding failure into a VALIDATION_ERROR
// that lists EVERY violated field, not only the first one.
func MapBindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			// e.Field() is already the json name, see Init()
			name := formatFieldName(e.Field())

			var msg string
			switch e.Tag() {
			case "required":
				msg = fmt.Sprintf("%s is required", name)
			case "email":
				msg = fmt.Sprintf("%s must be a valid email", name)
			default:
				msg = fmt.Sprintf("%s is invalid", name)
			}
			fields = append(fields, FieldError{Field: e.Field(), Message: msg})
		}
		return NewValidation(fields)
	}

	return New(
		CodeInvalidInput,
		"Invalid request body",
		http.StatusBadRequest,
	)
}
