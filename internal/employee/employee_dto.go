package employee

type CreateEmployeeRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	Salary       string `json:"salary"`
	Status       string `json:"status"`
	ProfileImage string `json:"profileImage"`
}

// UpdateEmployeeRequest is a partial update: only non-nil fields are
// applied. ID and createdAt can never be overwritten.
type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Department   *string `json:"department"`
	Salary       *string `json:"salary"`
	Status       *string `json:"status"`
	ProfileImage *string `json:"profileImage"`
}

type ListEmployeesParams struct {
	Search   string
	Page     int
	PageSize int
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Department   string `json:"department"`
	Salary       string `json:"salary"`
	Status       string `json:"status"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    string `json:"createdAt"`
}
