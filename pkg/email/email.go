// pkg/email/email.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailService struct {
	apiKey    string
	from      string
	endpoint  string
	client    *http.Client
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type NewMessageData struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

type DigestMessage struct {
	Name    string
	Email   string
	Subject string
}

type DigestDay struct {
	Label string
	Count int
}

type DailyDigestData struct {
	DisplayName   string
	Date          time.Time
	NewMessages   int
	TotalMessages int
	Messages      []DigestMessage
	Week          []DigestDay
}

type PasswordChangedData struct {
	Email string
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	if from == "" {
		from = "BroTech <noreply@brotech.io>"
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		endpoint:  resendEndpoint,
		client:    &http.Client{Timeout: 15 * time.Second},
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(ctx context.Context, to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	jsonData, err := json.Marshal(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	zap.L().Debug("Sending email", zap.String("to", to), zap.String("template", templateName))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error (%d): %s", resp.StatusCode, string(respBody))
	}

	zap.L().Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// Email sending methods
func (s *EmailService) SendNewMessageNotification(ctx context.Context, to string, data NewMessageData) error {
	subject := fmt.Sprintf("New message from %s 📬", data.Name)
	return s.sendTemplateEmail(ctx, to, subject, "new_message.html", data)
}

func (s *EmailService) SendDailyDigest(ctx context.Context, to string, data DailyDigestData) error {
	subject := fmt.Sprintf("%d new message(s) in the last 24 hours 📊", data.NewMessages)
	return s.sendTemplateEmail(ctx, to, subject, "daily_digest.html", data)
}

func (s *EmailService) SendPasswordChangedEmail(ctx context.Context, to string) error {
	return s.sendTemplateEmail(ctx, to, "Your Password Has Been Changed 🔐", "password_changed.html", PasswordChangedData{Email: to})
}
