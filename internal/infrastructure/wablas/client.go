package wablas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/herbamart/network-service/internal/config"
	"github.com/herbamart/network-service/internal/domain"
)

// Client sends WhatsApp messages through a Wablas-style gateway.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg config.WablasService) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendResponse struct {
	Status    bool   `json:"status"`
	MessageID string `json:"message_id"`
	Message   string `json:"message,omitempty"`
}

// SendMessage normalizes the recipient phone first and fails fast on an
// invalid number without attempting delivery.
func (c *Client) SendMessage(ctx context.Context, recipientPhone, text string) (string, error) {
	phone, err := NormalizePhone(recipientPhone)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("phone", phone)
	form.Set("message", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-message", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: wablas send: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: wablas returned status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var payload sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding wablas response: %v", domain.ErrUpstreamFailure, err)
	}
	if !payload.Status {
		return "", fmt.Errorf("%w: wablas rejected message: %s", domain.ErrUpstreamFailure, payload.Message)
	}
	return payload.MessageID, nil
}

// NormalizePhone converts Indonesian phone numbers to the 62XXXXXXXXXX
// international form. Accepted inputs are 08…, +62… and 62… numbers.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	switch {
	case strings.HasPrefix(cleaned, "+62"):
		cleaned = "62" + cleaned[3:]
	case strings.HasPrefix(cleaned, "08"):
		cleaned = "62" + cleaned[1:]
	case strings.HasPrefix(cleaned, "62"):
	default:
		return "", fmt.Errorf("%w: phone %q is not an Indonesian number", domain.ErrValidation, phone)
	}

	if len(cleaned) < 10 || len(cleaned) > 15 {
		return "", fmt.Errorf("%w: phone %q has invalid length", domain.ErrValidation, phone)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: phone %q contains non-digits", domain.ErrValidation, phone)
		}
	}
	return cleaned, nil
}
