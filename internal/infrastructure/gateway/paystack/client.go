// Package paystack calls the Paystack transaction-verification endpoint.
// The client holds the server-side secret so it never reaches the browser;
// the response body is passed through to the caller untouched.
package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/savemypet/storefront/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the Paystack client.
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client is a thin HTTP client for the verification endpoint.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewClient builds a Client. A default timeout is applied when none is
// provided so a hanging gateway call cannot hang the proxied request.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// VerifyTransaction fetches GET {base}/transaction/verify/{reference} and
// returns the gateway's JSON body verbatim. Any transport or parse failure
// maps to domain.ErrPaymentVerification.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrPaymentVerification, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentVerification, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrPaymentVerification, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: gateway returned non-JSON body", domain.ErrPaymentVerification)
	}
	return json.RawMessage(body), nil
}
