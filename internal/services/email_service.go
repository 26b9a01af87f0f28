package services

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationEmail(email, link string) error
	SendPasswordResetCode(email, code string) error
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender mailSender
	from   string
	dryRun bool
	log    zerolog.Logger
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool, log zerolog.Logger) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		sender: dialer,
		from:   fromEmail,
		dryRun: dryRun,
		log:    log,
	}
}

func (s *emailService) SendVerificationEmail(email, link string) error {
	if err := s.send(email, "Please verify your email", renderVerifyEmail(email, link)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetCode(email, code string) error {
	if err := s.send(email, "OTP Verify Password", renderResetCodeEmail(code)); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *emailService) send(to, subject, body string) error {
	if s.dryRun {
		s.log.Info().Str("to", to).Str("subject", subject).Msg("email dry-run")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.sender.DialAndSend(m)
}
