package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hospilog/internal/config"
	"hospilog/internal/repositories"
	"hospilog/internal/services"
	mem "hospilog/pkg/memcache"
)

var Module = fx.Provide(
	provideTokenService, provideAccountService)

func provideTokenService(cfg *config.Config) (services.TokenServiceInterface, error) {
	a := cfg.Auth
	return services.NewTokenService(services.TokenConfig{
		Secret:        a.JWTSecret,
		EncryptionKey: a.EncryptionKey,
		Issuer:        a.Issuer,
		Audience:      a.Audience,
		StepUpTTL:     a.StepUpTTL,
		SessionTTL:    a.SessionTTL,
		ResetTTL:      a.ResetTTL,
	})
}

func provideAccountService(
	cfg *config.Config,
	accountRepo repositories.AccountRepository,
	tokens services.TokenServiceInterface,
	mail services.IMailService,
	ledger mem.StepUpLedger,
	events services.EventPublisher,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, mail, ledger, events, services.AuthOptions{
		OTPDigits:       cfg.Auth.OTPDigits,
		MaxOTPAttempts:  cfg.Auth.MaxOTPAttempts,
		SingleUseStepUp: cfg.Auth.SingleUseStepUp,
	}, logger)
}
