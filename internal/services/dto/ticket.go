package dto

// CreateTicketRequest - новый тикет в деке
type CreateTicketRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1"`
}

// UpdateTicketStatusRequest - смена статуса тикета
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateCommentRequest - комментарий к тикету
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}
