package dto

type TaskRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=2000"`
	AssignedTo  string `json:"assignedTo" validate:"omitempty,objectid"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type TaskUpdateRequest struct {
	ID          string  `json:"-"`
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	AssignedTo  *string `json:"assignedTo" validate:"omitempty,objectid"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   *bool   `json:"completed"`
}

type TaskQuery struct {
	AssignedTo string `query:"assignedTo"`
	Completed  *bool  `query:"completed"`
}
