package department

type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Manager     string `json:"manager"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Manager     string `json:"manager"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
	Employees   int64  `json:"employees"`
	CreatedAt   string `json:"createdAt"`
}

type DepartmentStatsResponse struct {
	TotalDepartments int    `json:"totalDepartments"`
	TotalEmployees   int64  `json:"totalEmployees"`
	TotalBudget      string `json:"totalBudget"`
}
