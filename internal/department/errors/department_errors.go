package departmenterrors

import (
	"net/http"

	"hr-platform/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
)
