package models

type RequestResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetTicket is what a reset request hands back: the address and the issued code.
type PasswordResetTicket struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
