package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ezhulati/liftout-platform-sub000/internal/domain"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendApplicationStatusNotification(ctx context.Context, email, name, teamName, opportunityTitle, companyName string, status domain.ApplicationStatus, message string) error {
	subject := fmt.Sprintf("Application Update: %s at %s", opportunityTitle, companyName)

	plainText := fmt.Sprintf("Hello %s,\n\n%s's application to %s at %s is now %s.", name, teamName, opportunityTitle, companyName, statusLabel(status))
	if message != "" {
		plainText += fmt.Sprintf("\n\nMessage from the company:\n%s", message)
	}
	plainText += "\n\nBest regards,\nThe Liftout Team"

	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Application Update</h2>
				<p><strong>%s</strong>'s application to <strong>%s</strong> at <strong>%s</strong> is now <strong>%s</strong>.</p>
				%s
			</body>
		</html>
	`, teamName, opportunityTitle, companyName, statusLabel(status), formatOptionalMessage(message))

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendEOINotification(ctx context.Context, email, name, interestedPartyName, targetName, message string) error {
	subject := fmt.Sprintf("New Expression of Interest: %s", targetName)

	plainText := fmt.Sprintf("Hello %s,\n\n%s has expressed interest in %s.", name, interestedPartyName, targetName)
	if message != "" {
		plainText += fmt.Sprintf("\n\nTheir message:\n%s", message)
	}
	plainText += "\n\nBest regards,\nThe Liftout Team"

	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>New Expression of Interest</h2>
				<p><strong>%s</strong> has expressed interest in <strong>%s</strong>.</p>
				%s
			</body>
		</html>
	`, interestedPartyName, targetName, formatOptionalMessage(message))

	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func formatOptionalMessage(message string) string {
	if message == "" {
		return ""
	}
	return fmt.Sprintf("<p>%s</p>", message)
}
