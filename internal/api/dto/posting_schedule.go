package dto

type PostingScheduleDTO struct {
	ID        uint64 `json:"id"`
	Platform  string `json:"platform"`
	TimeSlot  string `json:"time_slot"`
	Frequency string `json:"frequency"`
	Active    bool   `json:"active"`
}

type CreatePostingScheduleDTO struct {
	Platform  string `json:"platform" binding:"required" validate:"oneof=twitter instagram"`
	TimeSlot  string `json:"time_slot" binding:"required" validate:"datetime=15:04"`
	Frequency string `json:"frequency" validate:"omitempty,oneof=daily weekdays custom"`
	Active    *bool  `json:"active"`
}
