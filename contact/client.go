package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNetwork is returned by Client.Submit when the request never got a
// response.
var ErrNetwork = errors.New("network error")

// RemoteError is a non-success response from the contact endpoint.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned %d", e.Status)
	}
	return fmt.Sprintf("contact endpoint returned %d: %s", e.Status, e.Message)
}

// User-facing texts returned by UserMessage.
const (
	SuccessText = "Thank you! We'll be in touch within one business day."
	NetworkText = "Network error. Please check your connection and try again."
	GenericText = "Something went wrong. Please try again."
)

// UserMessage maps a Submit result to the text shown to the visitor. A
// remote error message is shown verbatim.
func UserMessage(err error) string {
	if err == nil {
		return SuccessText
	}
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, ErrNetwork) {
		return NetworkText
	}
	return GenericText
}

// Client posts submissions to a contact endpoint. It does not retry.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient returns a client for the endpoint URL, e.g.
// "https://faceframebeauty.com/api/contact".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit validates sub locally, posts it and returns the accepted id.
func (c *Client) Submit(ctx context.Context, sub Submission) (string, error) {
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	var out struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Error   string `json:"error"`
	}
	decodeErr := json.Unmarshal(body, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteError{Status: resp.StatusCode, Message: strings.TrimSpace(out.Error)}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if !out.Success {
		return "", &RemoteError{Status: resp.StatusCode, Message: strings.TrimSpace(out.Error)}
	}
	return out.ID, nil
}
