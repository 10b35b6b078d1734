package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:8080")
}

// mailSender is the part of gomail.Dialer the service uses
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPEmailService mirrors in-app notifications to the recipient's mailbox
type SMTPEmailService struct {
	config SMTPConfig
	sender mailSender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		sender: dialer,
	}
}

// SendNotification emails message to one recipient. The message is plain text.
func (s *SMTPEmailService) SendNotification(ctx context.Context, toAddress, toName, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if toAddress == "" {
		return fmt.Errorf("recipient address is required")
	}

	subject := "FixDesk: " + firstLine(message, 60)
	link := strings.TrimRight(s.config.BaseURL, "/")

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>%s</p>
			<p><a href="%s">Open FixDesk</a></p>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(message), html.EscapeString(link))

	plainBody := fmt.Sprintf("Hi %s,\n\n%s\n\nOpen FixDesk: %s\n", toName, message, link)

	return s.sendEmail(toAddress, toName, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, toName, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetAddressHeader("To", to, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return s
}
