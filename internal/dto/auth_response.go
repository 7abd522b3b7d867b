package dto

import (
	"time"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
)

type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FatherName   string    `json:"fatherName"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	EmployeeCode string    `json:"employeeCode"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthResponse is what Register, Login and Refresh hand back. The token pair
// is written to cookies by the controller and echoed for non-browser callers.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func CreateUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID.Hex(),
		Name:         user.Name,
		FatherName:   user.FatherName,
		Email:        user.Email,
		Role:         user.Role,
		EmployeeCode: user.EmployeeCode,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
