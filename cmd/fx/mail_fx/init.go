package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmaker/internal/infra"
	"tripmaker/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *infra.Config, log *zap.Logger) (services.IMailService, error) {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   "TripMaker",
		UseSSL:     cfg.SMTPUseSSL,
		RequireTLS: !cfg.IsDevelopment(),

		QuoteRecipient: cfg.QuoteRecipient,
		AppName:        "TripMaker",
		AppBaseURL:     cfg.AppBaseURL,
	}

	if smtpCfg.Host == "" {
		log.Warn("SMTP_HOST not set, quote and reset mails will fail to deliver")
	}
	return services.NewSMTPMailService(smtpCfg, log)
}
