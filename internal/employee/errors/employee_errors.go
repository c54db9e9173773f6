package employeeerrors

import (
	"net/http"

	"hr-platform/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidPage = apperror.New(
		apperror.CodeInvalidInput,
		"page must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidPageSize = apperror.New(
		apperror.CodeInvalidInput,
		"pageSize must be a positive integer",
		http.StatusBadRequest,
	)
)
