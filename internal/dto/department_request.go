package dto

type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Head        string `json:"head" validate:"omitempty,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type DepartmentUpdateRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Head        *string `json:"head" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type ResolveDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
