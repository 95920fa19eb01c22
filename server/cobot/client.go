package cobot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

func New(cfg Config, httpClient *http.Client) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Client talks to the Cobot membership API. Requests are sent exactly once,
// with no retries, per-request timeouts or rate limiting, so slow or flaky
// upstream responses surface directly to the caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// APIError is returned for every failed provider request. StatusCode and
// Body are zero when the request never produced a response, Err is nil
// when it did.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cobot: request failed: %s", e.Err)
	}
	return fmt.Sprintf("cobot: request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (c *Client) GetMembership(ctx context.Context, membershipID string) (*Membership, error) {
	var membership Membership
	if err := c.get(ctx, "/api/memberships/"+membershipID, nil, &membership); err != nil {
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}
	return &membership, nil
}

func (c *Client) GetCustomFields(ctx context.Context, membershipID string) ([]CustomField, error) {
	var rs customFieldsResponse
	if err := c.get(ctx, "/api/memberships/"+membershipID+"/custom_fields", nil, &rs); err != nil {
		return nil, fmt.Errorf("failed to fetch custom fields: %w", err)
	}
	return rs.Fields, nil
}

func (c *Client) GetInvoices(ctx context.Context, membershipID string) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.get(ctx, "/api/memberships/"+membershipID+"/invoices", nil, &invoices); err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return invoices, nil
}

func (c *Client) GetBookings(ctx context.Context, membershipID string, from time.Time, to time.Time) ([]Booking, error) {
	query := url.Values{
		"from": []string{from.Format("2006-01-02")},
		"to":   []string{to.Format("2006-01-02")},
	}

	var bookings []Booking
	if err := c.get(ctx, "/api/memberships/"+membershipID+"/bookings", query, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// UpdateCustomFields writes the given fields in a single batch and returns
// the provider's response body untouched.
func (c *Client) UpdateCustomFields(ctx context.Context, membershipID string, updates []FieldUpdate) (json.RawMessage, error) {
	body, err := json.Marshal(updateCustomFieldsRequest{Fields: updates})
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom fields: %w", err)
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.cfg.BaseURL+"/api/memberships/"+membershipID+"/custom_fields", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	rq.Header.Set("Content-Type", "application/json")

	rs, err := c.do(rq)
	if err != nil {
		return nil, fmt.Errorf("failed to update custom fields: %w", err)
	}
	defer rs.Body.Close()

	data, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}

type customFieldsResponse struct {
	Fields []CustomField `json:"fields"`
}

type updateCustomFieldsRequest struct {
	Fields []FieldUpdate `json:"fields"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	rs, err := c.do(rq)
	if err != nil {
		return err
	}
	defer rs.Body.Close()

	if err = json.NewDecoder(rs.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) do(rq *http.Request) (*http.Response, error) {
	rq.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	rq.Header.Set("Accept", "application/json")

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	if rs.StatusCode < http.StatusOK || rs.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(rs.Body)
		_ = rs.Body.Close()
		return nil, &APIError{StatusCode: rs.StatusCode, Body: string(body)}
	}

	return rs, nil
}
