package leave

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

type UpdateLeaveStatusRequest struct {
	Status     string `json:"status"`
	ApprovedBy string `json:"approvedBy"`
}

// Filter fields are exact-match; empty means "no filter".
type Filter struct {
	Status     string
	EmployeeID string
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedDate  string  `json:"appliedDate"`
	ApprovedBy   *string `json:"approvedBy,omitempty"`
	ApprovedDate *string `json:"approvedDate,omitempty"`
}
