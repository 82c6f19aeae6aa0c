// Package apiclient is a typed HTTP client for the finance tracker REST API.
// It mirrors the wire contract exactly and carries no server-side types, so it
// can be vendored into other tools without dragging in the backend packages.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is the wire shape of an account without derived totals.
type Account struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultBalance decimal.Decimal `json:"defaultBalance"`
}

// AccountWithTotals extends Account with the income and expense sums the
// server derives from the account's records.
type AccountWithTotals struct {
	Account
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// Record is the wire shape of an income or expense record. IDs travel as
// strings because the server serializes big integers that way.
type Record struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
}

// NewAccount is the payload for account creation.
type NewAccount struct {
	Name           string          `json:"name"`
	DefaultBalance decimal.Decimal `json:"defaultBalance"`
}

// AccountUpdate is a partial account payload; nil fields are omitted.
type AccountUpdate struct {
	Name           *string          `json:"name,omitempty"`
	DefaultBalance *decimal.Decimal `json:"defaultBalance,omitempty"`
}

// NewRecord is the payload for record creation.
type NewRecord struct {
	Type      string          `json:"type"`
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
}

// RecordUpdate is a partial record payload; nil fields are omitted.
type RecordUpdate struct {
	Type      *string          `json:"type,omitempty"`
	AccountID *int64           `json:"accountId,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Date      *string          `json:"date,omitempty"`
}

// RecordsQuery selects the calendar month (and optionally the account) for a
// record listing.
type RecordsQuery struct {
	Year      int
	Month     int
	AccountID int64 // 0 means all accounts
}

// APIError is returned for any non-2xx response. Message carries the server's
// envelope message when one could be decoded.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to one backend instance. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL (e.g.
// "http://localhost:3000/api"). httpClient may be nil, in which case a client
// with a 30 second timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListAccounts returns every account with its derived totals.
func (c *Client) ListAccounts(ctx context.Context) ([]AccountWithTotals, error) {
	var out []AccountWithTotals
	if err := c.send(ctx, http.MethodGet, "/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAccount creates an account. The returned totals are always zero.
func (c *Client) CreateAccount(ctx context.Context, body NewAccount) (*AccountWithTotals, error) {
	var out AccountWithTotals
	if err := c.send(ctx, http.MethodPost, "/accounts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAccount applies a partial update; at least one field must be set.
func (c *Client) UpdateAccount(ctx context.Context, id int64, body AccountUpdate) (*Account, error) {
	var out Account
	if err := c.send(ctx, http.MethodPut, "/accounts/"+strconv.FormatInt(id, 10), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount deletes an account and all of its records.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, "/accounts/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListRecords returns the records falling in the queried calendar month.
func (c *Client) ListRecords(ctx context.Context, q RecordsQuery) ([]Record, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(q.Year))
	params.Set("month", strconv.Itoa(q.Month))
	if q.AccountID != 0 {
		params.Set("accountId", strconv.FormatInt(q.AccountID, 10))
	}

	var out []Record
	if err := c.send(ctx, http.MethodGet, "/records?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRecord creates a record.
func (c *Client) CreateRecord(ctx context.Context, body NewRecord) (*Record, error) {
	var out Record
	if err := c.send(ctx, http.MethodPost, "/records", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord applies a partial update; at least one field must be set.
func (c *Client) UpdateRecord(ctx context.Context, id string, body RecordUpdate) (*Record, error) {
	var out Record
	if err := c.send(ctx, http.MethodPut, "/records/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecord deletes a record.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil)
}

// send performs one request and decodes the response envelope's data field
// into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode, Message: env.Message}
		if decodeErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
