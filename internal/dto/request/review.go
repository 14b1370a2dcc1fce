package request

type CreateReviewRequest struct {
	Score int    `json:"score" validate:"required,min=1,max=10"`
	Text  string `json:"text" validate:"required,max=5000"`
}

type UpdateReviewRequest struct {
	Score *int    `json:"score,omitempty" validate:"omitempty,min=1,max=10"`
	Text  *string `json:"text,omitempty" validate:"omitempty,max=5000"`
}
