package leaveerrors

import (
	"net/http"

	"hr-platform/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrLeaveAlreadyResolved = apperror.New(
		apperror.CodeConflict,
		"leave has already been approved or rejected",
		http.StatusConflict,
	)
)
