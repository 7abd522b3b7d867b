package dto

type EmployeeRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=50"`
	FatherName string   `json:"fatherName" validate:"required,min=2,max=50"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,password"`
	JobTitle   string   `json:"jobTitle" validate:"required,min=2,max=100"`
	Department string   `json:"department" validate:"omitempty,max=100"`
	Salary     *float64 `json:"salary" validate:"required,min=0"`
	Status     string   `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
	JoinDate   string   `json:"joinDate" validate:"required"`
	Avatar     string   `json:"avatar" validate:"omitempty,uri"`
}

// EmployeeUpdateRequest leaves nil fields untouched. An empty Department
// unassigns the employee.
type EmployeeUpdateRequest struct {
	ID         string   `json:"-"`
	Name       *string  `json:"name" validate:"omitempty,min=2,max=50"`
	FatherName *string  `json:"fatherName" validate:"omitempty,min=2,max=50"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	JobTitle   *string  `json:"jobTitle" validate:"omitempty,min=2,max=100"`
	Department *string  `json:"department" validate:"omitempty,max=100"`
	Salary     *float64 `json:"salary" validate:"omitempty,min=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
	JoinDate   *string  `json:"joinDate"`
	Avatar     *string  `json:"avatar" validate:"omitempty,uri"`
}

type EmployeeQuery struct {
	Department string `query:"department"`
	Status     string `query:"status"`
}
