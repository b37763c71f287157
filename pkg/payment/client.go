// Package payment creates hosted checkout sessions against an external
// payment provider. The provider is treated as an opaque HTTP service: we
// pass line items and return URLs, it hands back a redirectable session.
// Retry and idempotency semantics are the provider's business, not ours.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Provider string

const (
	ProviderStripe      Provider = "stripe"
	ProviderMercadoPago Provider = "mercadopago"
)

var (
	// ErrGatewayTimeout means the provider did not answer within the
	// configured deadline. The caller surfaces it as a failure instead of
	// letting the request hang.
	ErrGatewayTimeout = errors.New("payment gateway timeout")
	// ErrGateway covers any other provider-side failure.
	ErrGateway = errors.New("payment gateway error")
)

// LineItem is one cart row priced for checkout.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Session is the provider's redirectable checkout session.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Config struct {
	Provider Provider
	APIURL   string
	APIKey   string
	Currency string
	Timeout  time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *logrus.Logger
}

func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// CreateCheckoutSession sends the line items and return URLs to the provider
// and returns the session to redirect the shopper to. The call is bounded by
// the configured timeout; a deadline hit maps to ErrGatewayTimeout.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (Session, error) {
	if len(items) == 0 {
		return Session{}, fmt.Errorf("%w: no line items", ErrGateway)
	}

	payload := c.buildPayload(items, successURL, cancelURL)
	body, err := json.Marshal(payload)
	if err != nil {
		return Session{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Session{}, ErrGatewayTimeout
		}
		return Session{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"status": resp.StatusCode, "provider": c.cfg.Provider}).
				Warn("checkout session rejected")
		}
		return Session{}, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	return c.parseSession(raw)
}

func (c *Client) buildPayload(items []LineItem, successURL, cancelURL string) map[string]any {
	switch c.cfg.Provider {
	case ProviderMercadoPago:
		// Preference payload: items with unit_price in currency units.
		mpItems := make([]map[string]any, 0, len(items))
		for _, it := range items {
			mpItems = append(mpItems, map[string]any{
				"title":       it.Name,
				"quantity":    it.Quantity,
				"unit_price":  it.UnitPrice,
				"currency_id": c.cfg.Currency,
			})
		}
		return map[string]any{
			"items": mpItems,
			"back_urls": map[string]string{
				"success": successURL,
				"failure": cancelURL,
			},
			"auto_return": "approved",
		}
	default:
		// Stripe-style session payload: amounts in minor units.
		lineItems := make([]map[string]any, 0, len(items))
		for _, it := range items {
			lineItems = append(lineItems, map[string]any{
				"name":        it.Name,
				"quantity":    it.Quantity,
				"unit_amount": int64(math.Round(it.UnitPrice * 100)),
				"currency":    c.cfg.Currency,
			})
		}
		return map[string]any{
			"mode":        "payment",
			"line_items":  lineItems,
			"success_url": successURL,
			"cancel_url":  cancelURL,
		}
	}
}

func (c *Client) parseSession(raw []byte) (Session, error) {
	var parsed struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		InitPoint string `json:"init_point"` // Mercado Pago's redirect field
		Error     *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Session{}, fmt.Errorf("%w: malformed response: %v", ErrGateway, err)
	}
	if parsed.Error != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrGateway, parsed.Error.Message)
	}
	url := parsed.URL
	if url == "" {
		url = parsed.InitPoint
	}
	if parsed.ID == "" || url == "" {
		return Session{}, fmt.Errorf("%w: empty session in response", ErrGateway)
	}
	return Session{ID: parsed.ID, URL: url}, nil
}
