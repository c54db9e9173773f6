package employee

import (
	"regexp"
	"strconv"
	"strings"

	"hr-platform/internal/shared/apperror"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9()\-\s.]{5,19}$`)
)

// validateCreateRequest collects every violation instead of stopping at the
// first, so the caller gets the full list in one round trip.
func validateCreateRequest(req CreateEmployeeRequest) []apperror.FieldError {
	var fields []apperror.FieldError

	fields = appendFieldErrors(fields, checkName(req.Name))
	fields = appendFieldErrors(fields, checkEmail(req.Email))
	fields = appendFieldErrors(fields, checkPhone(req.Phone))
	fields = appendFieldErrors(fields, checkDepartment(req.Department))
	fields = appendFieldErrors(fields, checkSalary(req.Salary))
	fields = appendFieldErrors(fields, checkStatus(req.Status))

	return fields
}

// validateUpdateRequest checks only the fields the caller supplied.
func validateUpdateRequest(req UpdateEmployeeRequest) []apperror.FieldError {
	var fields []apperror.FieldError

	if req.Name != nil {
		fields = appendFieldErrors(fields, checkName(*req.Name))
	}
	if req.Email != nil {
		fields = appendFieldErrors(fields, checkEmail(*req.Email))
	}
	if req.Phone != nil {
		fields = appendFieldErrors(fields, checkPhone(*req.Phone))
	}
	if req.Department != nil {
		fields = appendFieldErrors(fields, checkDepartment(*req.Department))
	}
	if req.Salary != nil {
		fields = appendFieldErrors(fields, checkSalary(*req.Salary))
	}
	if req.Status != nil {
		fields = appendFieldErrors(fields, checkStatus(*req.Status))
	}

	return fields
}

func checkName(name string) *apperror.FieldError {
	if len(strings.TrimSpace(name)) < 2 {
		return &apperror.FieldError{Field: "name", Message: "Name must be at least 2 characters"}
	}
	return nil
}

func checkEmail(email string) *apperror.FieldError {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &apperror.FieldError{Field: "email", Message: "Valid email is required"}
	}
	return nil
}

func checkPhone(phone string) *apperror.FieldError {
	if phone == "" {
		return nil // optional
	}
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return &apperror.FieldError{Field: "phone", Message: "Valid phone number required"}
	}
	return nil
}

func checkDepartment(department string) *apperror.FieldError {
	if strings.TrimSpace(department) == "" {
		return &apperror.FieldError{Field: "department", Message: "Department is required"}
	}
	return nil
}

func checkSalary(salary string) *apperror.FieldError {
	if salary == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(salary), 64)
	if err != nil || v < 0 {
		return &apperror.FieldError{Field: "salary", Message: "Salary must be a non-negative number"}
	}
	return nil
}

func checkStatus(status string) *apperror.FieldError {
	if status == "" {
		return nil // defaulted to active at creation
	}
	if !ValidStatus(status) {
		return &apperror.FieldError{Field: "status", Message: "Status must be one of active, inactive, on-leave"}
	}
	return nil
}

func appendFieldErrors(fields []apperror.FieldError, fe *apperror.FieldError) []apperror.FieldError {
	if fe == nil {
		return fields
	}
	return append(fields, *fe)
}
