package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, logger *zap.Logger) (services.IMailService, error) {
	m := cfg.Mail
	if m.Password == "" {
		logger.Warn("SMTP_PASSWORD is empty; mail delivery will fail until it is set")
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       m.Host,
		Port:       m.Port,
		Username:   m.Username,
		Password:   m.Password,
		From:       m.From,
		FromName:   m.FromName,
		UseSSL:     m.UseSSL,
		RequireTLS: m.RequireTLS,
		AppName:    m.AppName,
		AppBaseURL: m.AppBaseURL,
	}, logger)
}
