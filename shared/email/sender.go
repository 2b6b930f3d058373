package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"insight-stack/internal/models"
	"insight-stack/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendInsightsReport emails the combined outlier and cadence reports for a
// run's analyzed channels.
func (s *Sender) SendInsightsReport(reports []*models.ChannelReport) error {
	if len(reports) == 0 {
		return nil // Nothing to report
	}

	subject := fmt.Sprintf("Channel Insights - %d Channels Analyzed (%s)",
		len(reports), reports[0].Date.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(reports)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateEmailBody(reports []*models.ChannelReport) (string, error) {
	// Read template from external file
	templatePath := "agents/channel-insights/email_template.html"
	tmplBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	tmpl, err := template.New("email").Parse(string(tmplBytes))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, reports); err != nil {
		return "", err
	}

	return buf.String(), nil
}
