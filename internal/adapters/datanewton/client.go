// Package datanewton is the HTTP client for the primary company-data
// provider. Callers treat any error from it as "provider has nothing",
// so the client keeps failure modes simple: one attempt, 30s budget,
// descriptive error.
package datanewton

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finsight/internal/domain"
	"finsight/internal/finance"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Counterparty fetches the entity profile with the owner and address blocks
// included.
func (c *Client) Counterparty(ctx context.Context, inn string) (*domain.CounterpartyDoc, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("inn", inn)
	params.Add("filters", "OWNER_BLOCK")
	params.Add("filters", "ADDRESS_BLOCK")

	var raw map[string]any
	if err := c.get(ctx, "/v1/counterparty", params, &raw); err != nil {
		return nil, err
	}
	return &domain.CounterpartyDoc{Raw: raw}, nil
}

// Finance fetches the raw financial statement tables.
func (c *Client) Finance(ctx context.Context, inn string) (*finance.FinanceData, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("inn", inn)

	var data finance.FinanceData
	if err := c.get(ctx, "/v1/finance", params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("datanewton %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("datanewton %s: decode: %w", path, err)
	}
	return nil
}
