package services

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/resend/resend-go/v2"

	"github.com/skilllink/skilllink/internal/config"
	"github.com/skilllink/skilllink/internal/logging"
	"github.com/skilllink/skilllink/internal/models"
)

// Email represents an email to be sent
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailProvider is the interface for sending emails
type EmailProvider interface {
	Send(ctx context.Context, email *Email) error
}

// EmailService renders and sends application emails.
type EmailService struct {
	provider    EmailProvider
	fromAddress string
	fromName    string
	baseURL     string
}

// NewEmailService creates a new email service based on configuration
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	var provider EmailProvider

	switch cfg.Provider {
	case "resend":
		provider = NewResendProvider(cfg.ResendAPIKey, cfg.FromName, cfg.FromAddress)
	case "smtp":
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.FromName, cfg.FromAddress)
	default:
		provider = NewConsoleProvider()
	}

	return &EmailService{
		provider:    provider,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     cfg.BaseURL,
	}
}

// SendWelcomeEmail greets a newly registered user.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, user *models.User) error {
	html, text := s.renderWelcomeEmail(user.DisplayName, string(user.Role))
	return s.provider.Send(ctx, &Email{
		To:      user.Email,
		Subject: "Welcome to SkillLink",
		HTML:    html,
		Text:    text,
	})
}

// SendConnectionRequestEmail tells a user someone wants to connect.
func (s *EmailService) SendConnectionRequestEmail(ctx context.Context, to *models.User, from models.Profile) error {
	html, text := s.renderConnectionRequestEmail(to.DisplayName, from)
	return s.provider.Send(ctx, &Email{
		To:      to.Email,
		Subject: fmt.Sprintf("%s wants to connect on SkillLink", from.DisplayName),
		HTML:    html,
		Text:    text,
	})
}

// SendConnectionAcceptedEmail tells a requester their request was accepted.
func (s *EmailService) SendConnectionAcceptedEmail(ctx context.Context, to *models.User, by models.Profile) error {
	html, text := s.renderConnectionAcceptedEmail(to.DisplayName, by)
	return s.provider.Send(ctx, &Email{
		To:      to.Email,
		Subject: fmt.Sprintf("%s accepted your connection request", by.DisplayName),
		HTML:    html,
		Text:    text,
	})
}

func (s *EmailService) renderWelcomeEmail(name, role string) (html, text string) {
	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #333; font-size: 24px;">Welcome to SkillLink, %s!</h1>

  <p>Your %s account is ready. Browse the directory to find people to learn with,
  send a connection request, and start a conversation once they accept.</p>

  <a href="%s"
     style="display: inline-block; background: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0;">
    Open SkillLink
  </a>

  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">SkillLink</p>
</body>
</html>`, name, role, s.baseURL)

	text = fmt.Sprintf(`Welcome to SkillLink, %s!

Your %s account is ready. Browse the directory to find people to learn with,
send a connection request, and start a conversation once they accept.

%s

--
SkillLink`, name, role, s.baseURL)

	return html, text
}

func (s *EmailService) renderConnectionRequestEmail(name string, from models.Profile) (html, text string) {
	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #333; font-size: 24px;">New connection request</h1>

  <p>Hi %s,</p>

  <p><strong>%s</strong> (%s, %s) wants to connect with you on SkillLink.</p>

  <a href="%s/#connections"
     style="display: inline-block; background: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0;">
    View Request
  </a>

  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">SkillLink</p>
</body>
</html>`, name, from.DisplayName, from.Role, from.Subject, s.baseURL)

	text = fmt.Sprintf(`Hi %s,

%s (%s, %s) wants to connect with you on SkillLink.

View the request: %s/#connections

--
SkillLink`, name, from.DisplayName, from.Role, from.Subject, s.baseURL)

	return html, text
}

func (s *EmailService) renderConnectionAcceptedEmail(name string, by models.Profile) (html, text string) {
	html = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #333; font-size: 24px;">You're connected</h1>

  <p>Hi %s,</p>

  <p><strong>%s</strong> accepted your connection request. You can now message each other.</p>

  <a href="%s/#messages"
     style="display: inline-block; background: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 20px 0;">
    Start Chatting
  </a>

  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">SkillLink</p>
</body>
</html>`, name, by.DisplayName, s.baseURL)

	text = fmt.Sprintf(`Hi %s,

%s accepted your connection request. You can now message each other.

Start chatting: %s/#messages

--
SkillLink`, name, by.DisplayName, s.baseURL)

	return html, text
}

// ResendProvider sends emails using the Resend API
type ResendProvider struct {
	client *resend.Client
	from   string
}

func NewResendProvider(apiKey, fromName, fromAddress string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	_, err := p.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("sending email via Resend: %w", err)
	}

	logging.Info("Email sent via Resend", map[string]interface{}{"to": email.To, "subject": email.Subject})
	return nil
}

// SMTPProvider sends emails via SMTP (for Mailpit in local dev)
type SMTPProvider struct {
	host        string
	port        int
	from        string
	fromAddress string
}

func NewSMTPProvider(host string, port int, fromName, fromAddress string) *SMTPProvider {
	return &SMTPProvider{
		host:        host,
		port:        port,
		from:        fmt.Sprintf("%s <%s>", fromName, fromAddress),
		fromAddress: fromAddress,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", p.from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", email.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.HTML)

	err := smtp.SendMail(addr, nil, p.fromAddress, []string{email.To}, buf.Bytes())
	if err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	logging.Info("Email sent via SMTP", map[string]interface{}{"to": email.To, "subject": email.Subject})
	return nil
}

// ConsoleProvider logs emails to console (for development)
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	logging.Info("=== EMAIL (Console Provider) ===", map[string]interface{}{"to": email.To, "subject": email.Subject})
	fmt.Printf("\n=== EMAIL ===\n")
	fmt.Printf("To: %s\n", email.To)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("---\n")
	fmt.Printf("%s\n", email.Text)
	fmt.Printf("=============\n\n")
	return nil
}
