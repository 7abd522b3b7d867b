package dto

type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
	IsActive *bool  `json:"isActive"`
}

type AnnouncementUpdateRequest struct {
	ID       string  `json:"-"`
	Title    *string `json:"title" validate:"omitempty,min=2,max=200"`
	Message  *string `json:"message" validate:"omitempty,max=5000"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	IsActive *bool   `json:"isActive"`
}
