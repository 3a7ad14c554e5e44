package dtos

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
