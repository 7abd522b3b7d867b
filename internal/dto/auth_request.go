package dto

type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=50"`
	FatherName   string `json:"fatherName" validate:"required,min=2,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,password"`
	Role         string `json:"role" validate:"required,oneof=admin employee"`
	EmployeeCode string `json:"employeeCode" validate:"omitempty,min=2,max=20"`
}

type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	EmployeeCode string `json:"employeeCode"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
}
