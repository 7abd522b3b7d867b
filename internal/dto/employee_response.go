package dto

import (
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
)

type EmployeeResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	FatherName   string    `json:"fatherName"`
	Email        string    `json:"email"`
	EmployeeCode string    `json:"employeeCode"`
	JobTitle     string    `json:"jobTitle"`
	Department   string    `json:"department"`
	DepartmentID *string   `json:"departmentId"`
	Salary       float64   `json:"salary"`
	Status       string    `json:"status"`
	JoinDate     string    `json:"joinDate"`
	Avatar       *string   `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateEmployeeResponse flattens the profile together with its principal and
// department. department may be nil for an unassigned employee.
func CreateEmployeeResponse(employee domain.Employee, user domain.User, department *domain.Department) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           employee.ID.Hex(),
		UserID:       employee.UserID.Hex(),
		Name:         user.Name,
		FatherName:   user.FatherName,
		Email:        user.Email,
		EmployeeCode: user.EmployeeCode,
		JobTitle:     employee.JobTitle,
		Salary:       employee.Salary,
		Status:       employee.Status,
		JoinDate:     utils.FormatDate(employee.JoinDate),
		CreatedAt:    employee.CreatedAt,
		UpdatedAt:    employee.UpdatedAt,
	}

	if department != nil {
		resp.Department = department.Name
		id := department.ID.Hex()
		resp.DepartmentID = &id
	}

	if employee.Avatar != "" {
		avatar := employee.Avatar
		resp.Avatar = &avatar
	}

	return resp
}
