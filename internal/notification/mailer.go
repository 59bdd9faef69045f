package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIKeyName is the system-config key holding the SendGrid API key.
const APIKeyName = "SENDGRID_API_KEY"

// ConfigSource resolves runtime settings such as API keys and hotel branding.
type ConfigSource interface {
	Get(ctx context.Context, key string) (string, error)
}

type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridMailer delivers mail through the SendGrid v3 API.
type SendGridMailer struct {
	client  *http.Client
	baseURL string
	from    string
	config  ConfigSource
}

func NewSendGridMailer(client *http.Client, baseURL, from string, config ConfigSource) *SendGridMailer {
	return &SendGridMailer{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		config:  config,
	}
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgAttachment struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Disposition string `json:"disposition"`
}

type sgMail struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	Attachments      []sgAttachment      `json:"attachments,omitempty"`
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	apiKey, err := m.config.Get(ctx, APIKeyName)
	if err != nil {
		return fmt.Errorf("load sendgrid api key: %w", err)
	}
	if apiKey == "" {
		return errors.New("sendgrid api key is empty")
	}

	payload := sgMail{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: msg.To}}}},
		From:             sgAddress{Email: m.from},
		Subject:          msg.Subject,
		Content:          []sgContent{{Type: "text/html", Value: msg.HTML}},
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, sgAttachment{
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			Filename:    a.FileName,
			Type:        a.ContentType,
			Disposition: "attachment",
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendgrid request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", msg.To, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

var _ Mailer = (*SendGridMailer)(nil)
