package email

import (
	"context"
	"fmt"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendEndpoint = "/v3/mail/send"

// SendGridSender sends dynamic-template mails through the SendGrid v3 API
type SendGridSender struct {
	apiKey     string
	host       string
	fromEmail  string
	fromName   string
	templateID string
	origin     string
}

// SendGridOption configures a SendGridSender
type SendGridOption func(*SendGridSender)

// WithHost points the sender at another API host
func WithHost(host string) SendGridOption {
	return func(s *SendGridSender) {
		s.host = host
	}
}

// NewSendGridSender creates a SendGridSender
func NewSendGridSender(cfg config.EmailConfig, origin string, opts ...SendGridOption) *SendGridSender {
	s := &SendGridSender{
		apiKey:     cfg.APIKey,
		host:       "https://api.sendgrid.com",
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		templateID: cfg.LoginTemplateID,
		origin:     origin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SendGridSender) loginMail(toEmail, token string) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	m.SetTemplateID(s.templateID)

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", toEmail))
	p.SetDynamicTemplateData("login_link", LoginLink(s.origin, token))
	m.AddPersonalizations(p)
	return m
}

// SendLoginLink sends the login template to toEmail
func (s *SendGridSender) SendLoginLink(ctx context.Context, toEmail, token string) error {
	request := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(s.loginMail(toEmail, token))

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
