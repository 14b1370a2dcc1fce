package request

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=31,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,len=6"`
}
