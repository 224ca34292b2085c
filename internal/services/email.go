package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends the transactional auth emails. In dev mode (or
// with no API key) it logs the link instead of sending.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appURL string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		isDev:     isDev,
	}
}

func (s *EmailService) SendVerificationEmail(email, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.appURL, token)
	subject := "Welcome to Taskflow! Please verify your email."
	body := "Thanks for registering with Taskflow. Click the link below to verify your account:\n\n" +
		verifyURL + "\n\nThis link expires in 24 hours."

	return s.send(email, subject, body, "verification", verifyURL)
}

func (s *EmailService) SendPasswordResetEmail(email, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	subject := "Taskflow - Password Reset Request"
	body := "You requested a password reset. Click the link below to choose a new password:\n\n" +
		resetURL + "\n\nThis link expires in 1 hour. If you did not request this, ignore this email."

	return s.send(email, subject, body, "password_reset", resetURL)
}

func (s *EmailService) send(to, subject, body, kind, url string) error {
	if s.isDev || s.client == nil {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "url", url)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
