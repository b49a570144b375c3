package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendApplicationReceived(ctx context.Context, email, firstName string) error {
	body := fmt.Sprintf("Hello %s,\n\nThank you for your application. Our team will review it and be in touch soon.\n\nBest regards,\nThe Membership Team", firstName)
	return s.send(email, firstName, "We received your application", body)
}

func (s *sendGridEmailService) SendApprovalEmail(ctx context.Context, email, firstName, code string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour application has been approved. Use the following access code to complete your registration:\n\n%s\n\nThe code is valid for 30 days and can be used once.\n\nBest regards,\nThe Membership Team", firstName, code)
	return s.send(email, firstName, "Your application has been approved", body)
}

func (s *sendGridEmailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, plainText)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
