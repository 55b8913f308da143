package request_models

import "hospilog/internal/models/db_models"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyStepUpRequest is checked by the service so that a missing token or
// code surfaces as its own error.
type VerifyStepUpRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

type SignUpRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Role     db_models.Role `json:"role" binding:"required,oneof=STAFF VENDOR COMPANY ADMIN"`
	// Document and Contract take absolute URLs or the relative ones
	// /auth/register/document hands out.
	Document *string `json:"document" binding:"omitempty,uri"`
	Contract *string `json:"contract" binding:"omitempty,uri"`
}

type RequestForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}
