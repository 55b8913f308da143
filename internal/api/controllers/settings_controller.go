package controllers

import (
	"github.com/gin-gonic/gin"

	"hospilog/internal/models/request_models"
	"hospilog/internal/models/response_models"
	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type SettingsController struct {
	mail services.IMailService
}

func NewSettingsController(mail services.IMailService) *SettingsController {
	return &SettingsController{mail: mail}
}

func mailSettingsView(cfg services.SMTPConfig) response_models.MailSettingsResponse {
	return response_models.MailSettingsResponse{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Username:    cfg.Username,
		From:        cfg.From,
		FromName:    cfg.FromName,
		UseSSL:      cfg.UseSSL,
		PasswordSet: cfg.Password != "",
	}
}

// GetMail godoc
// @Summary Show the outgoing mail account (password masked)
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /config/mail [get]
func (s *SettingsController) GetMail(c *gin.Context) {
	utils.RespondSuccess(c, mailSettingsView(s.mail.Settings()), "Mail settings fetched")
}

// SetMail godoc
// @Summary Replace the outgoing mail account at runtime
// @Description A blank password keeps the current one.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body request_models.MailSettingsRequest true "SMTP account"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /config/setmail [post]
func (s *SettingsController) SetMail(c *gin.Context) {
	var req request_models.MailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	current := s.mail.Settings()
	err := s.mail.UpdateSettings(services.SMTPConfig{
		Host:       req.Host,
		Port:       req.Port,
		Username:   req.Username,
		Password:   req.Password,
		From:       req.From,
		FromName:   req.FromName,
		UseSSL:     req.UseSSL,
		RequireTLS: current.RequireTLS,
	})
	if err != nil {
		utils.HandleServiceError(c, utils.Invalid("smtp", err.Error()))
		return
	}
	utils.RespondSuccess(c, mailSettingsView(s.mail.Settings()), "Mail settings updated")
}
