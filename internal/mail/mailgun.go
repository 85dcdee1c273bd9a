package mail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/domain"
)

const (
	confirmationSubject = "Registration confirmation"
	confirmationText    = "Hi %s, please click the link to confirm your registration: %s"
)

// MailgunClient sends mail through the Mailgun HTTP API.
type MailgunClient struct {
	domain  string
	apiKey  string
	baseURL string
	from    string
	http    *http.Client
}

type MailgunConfig struct {
	Domain  string
	APIKey  string
	BaseURL string // defaults to https://api.mailgun.net
	From    string
}

func NewMailgun(cfg MailgunConfig) (*MailgunClient, error) {
	if cfg.Domain == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("mailgun domain and api key are required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.mailgun.net"
	}
	return &MailgunClient{
		domain:  cfg.Domain,
		apiKey:  cfg.APIKey,
		baseURL: base,
		from:    cfg.From,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *MailgunClient) SendConfirmation(ctx context.Context, to, username, link string) error {
	form := url.Values{}
	form.Set("from", c.from)
	form.Set("to", to)
	form.Set("subject", confirmationSubject)
	form.Set("text", fmt.Sprintf(confirmationText, username, link))

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailSend, err)
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailSend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("mailgun rejected message", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: mailgun status %d", domain.ErrMailSend, resp.StatusCode)
	}
	return nil
}
