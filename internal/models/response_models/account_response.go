package response_models

import (
	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
)

type LoginResponse struct {
	StepUpRequired bool   `json:"stepUpRequired"`
	StepUpToken    string `json:"stepUpToken"`
}

type SessionResponse struct {
	SessionToken string         `json:"sessionToken"`
	Role         db_models.Role `json:"role"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"resetToken"`
}

type AccountResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       db_models.Role `json:"role"`
	IsVerified bool           `json:"is_verified"`
	Document   *string        `json:"document,omitempty"`
	Contract   *string        `json:"contract,omitempty"`
	CreatedAt  int64          `json:"created_at"`
}

func NewAccountResponse(a *db_models.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		IsVerified: a.IsVerified,
		Document:   a.Document,
		Contract:   a.Contract,
		CreatedAt:  a.CreatedAt,
	}
}

type InsightResponse struct {
	Result   string `json:"result"`
	Provider string `json:"provider,omitempty"`
	Fallback bool   `json:"fallback"`
}

type MailSettingsResponse struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	From        string `json:"from"`
	FromName    string `json:"from_name"`
	UseSSL      bool   `json:"use_ssl"`
	PasswordSet bool   `json:"password_set"`
}

type UploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
