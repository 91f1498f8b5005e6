package services

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendReminderEmail delivers one reminder to a single recipient. Delivery is
// fire-and-forget from the caller's perspective: no retries, no queuing.
func (s *EmailService) SendReminderEmail(toEmail, subject, textBody, htmlBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)

	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}

	return nil
}

// SendWelcomeEmail greets a user after they complete their profile
func (s *EmailService) SendWelcomeEmail(toEmail, name string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(name, toEmail)
	subject := "Welcome to Wellspring"
	plainContent := fmt.Sprintf("Hi %s, your Wellspring account is ready. Start with today's journal or habit check-in!", name)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Your Wellspring account is ready. Start with today's journal or habit check-in!</p>", name)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	_, err := s.client.Send(message)
	return err
}
