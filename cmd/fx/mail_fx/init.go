package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"constellation/internal/services"
	"constellation/pkg/utils"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.MailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		FromName:   "Constellation",
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName:    "Constellation",
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		utils.Logger.Errorf("Failed to initialize SMTP mail service: %v", err)
	}
	return mailService
}
