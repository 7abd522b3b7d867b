package dto

import (
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
)

type DepartmentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Head          string    `json:"head"`
	Description   string    `json:"description"`
	EmployeeCount int64     `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ResolveDepartmentResponse struct {
	Department DepartmentResponse `json:"department"`
	Created    bool               `json:"created"`
}

type CounterCorrection struct {
	DepartmentID string `json:"departmentId"`
	Name         string `json:"name"`
	Previous     int64  `json:"previous"`
	Actual       int64  `json:"actual"`
}

type ReconcileResponse struct {
	Checked     int                 `json:"checked"`
	Pending     int                 `json:"pending"`
	Corrections []CounterCorrection `json:"corrections"`
}

func CreateDepartmentResponse(department domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            department.ID.Hex(),
		Name:          department.Name,
		Head:          department.Head,
		Description:   department.Description,
		EmployeeCount: department.EmployeeCount,
		CreatedAt:     department.CreatedAt,
		UpdatedAt:     department.UpdatedAt,
	}
}
