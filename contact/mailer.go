package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Message is an accepted submission ready for delivery.
type Message struct {
	ID         string
	ReceivedAt time.Time
	Submission Submission
}

// Subject returns the mail subject line for m.
func (m Message) Subject() string {
	if m.Submission.Service != "" {
		return fmt.Sprintf("New enquiry: %s from %s", m.Submission.Service, m.Submission.Name)
	}
	return "New enquiry from " + m.Submission.Name
}

// Body returns the plain text mail body for m.
func (m Message) Body() string {
	s := m.Submission
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", s.Name, s.Email)
	if s.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", s.Phone)
	}
	if s.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", s.Service)
	}
	if s.PreferredDate != "" {
		fmt.Fprintf(&b, "Preferred date: %s\n", s.PreferredDate)
	}
	fmt.Fprintf(&b, "Reference: %s\n\n%s\n", m.ID, s.Message)
	return b.String()
}

// Mailer delivers accepted messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// RelayMailer posts messages to an HTTP mail relay.
type RelayMailer struct {
	URL       string
	APIKey    string
	Sender    string
	Recipient string
	Client    *http.Client
}

// DefaultRelayTimeout bounds a relay request when the mailer has no client.
const DefaultRelayTimeout = 5 * time.Second

// NewRelayMailer returns a RelayMailer with an HTTP client using timeout.
func NewRelayMailer(url, apiKey, sender, recipient string, timeout time.Duration) *RelayMailer {
	if timeout <= 0 {
		timeout = DefaultRelayTimeout
	}
	return &RelayMailer{
		URL:       url,
		APIKey:    apiKey,
		Sender:    sender,
		Recipient: recipient,
		Client:    &http.Client{Timeout: timeout},
	}
}

type relayRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send posts m to the relay. Any non-2xx status is an error.
func (r *RelayMailer) Send(ctx context.Context, m Message) error {
	payload, err := json.Marshal(relayRequest{
		From:    r.Sender,
		To:      r.Recipient,
		ReplyTo: m.Submission.Email,
		Subject: m.Subject(),
		Text:    m.Body(),
	})
	if err != nil {
		return fmt.Errorf("encode relay request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultRelayTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("relay status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// LogMailer logs messages instead of sending them.
type LogMailer struct {
	Logger *zap.Logger
}

// Send logs m at info level.
func (l LogMailer) Send(_ context.Context, m Message) error {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("contact message",
		zap.String("id", m.ID),
		zap.String("name", m.Submission.Name),
		zap.String("email", m.Submission.Email),
		zap.String("service", m.Submission.Service),
		zap.Int("message_len", len(m.Submission.Message)),
	)
	return nil
}
