package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("freight base url is required")

// Client calls the remote carrier quoting service. Quotes are best-effort:
// callers treat any error as "no options from this source".
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a carrier quote client.
func NewClient(baseURL, apiToken string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:  strings.TrimSuffix(trimmed, "/"),
		apiToken: strings.TrimSpace(apiToken),
		// Quote latency is bounded by the platform request timeout, not here.
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// QuoteRequest asks the carrier for rates on one product to a destination CEP.
type QuoteRequest struct {
	OriginCEP      string `json:"origin_cep"`
	DestinationCEP string `json:"destination_cep"`
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
}

// Quote is one carrier rate.
type Quote struct {
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays int             `json:"delivery_days"`
}

// Quotes fetches carrier rates for the request.
func (c *Client) Quotes(ctx context.Context, req QuoteRequest) ([]Quote, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode quote request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quotes", bytes.NewReader(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build quote request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call carrier quote service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("carrier quote service responded %d", resp.StatusCode)).
			WithDetails(map[string]any{"body": string(snippet)})
	}

	var payload struct {
		Quotes []Quote `json:"quotes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode carrier quotes")
	}
	return payload.Quotes, nil
}
