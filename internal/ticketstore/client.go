// Package ticketstore provides functionality for interacting with the
// ticket store REST API.
package ticketstore

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

	"github.com/google/uuid"

	"github.com/danielolaszy/ticketiq/internal/config"
	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

const (
	ticketsPath  = "/api/tickets/"
	statsPath    = "/api/tickets/stats/"
	classifyPath = "/api/tickets/classify/"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// Client encapsulates HTTP access to the ticket store.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ticket store client from the API configuration.
// A zero timeout keeps the transport default.
func NewClient(cfg config.APIConfig) *Client {
	return NewClientWithHTTP(cfg.URL, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client that sends requests through httpClient.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListTickets fetches the tickets matching filter. Only set filter fields
// are sent as query parameters.
func (c *Client) ListTickets(ctx context.Context, filter models.Filter) ([]models.Ticket, error) {
	data, err := c.do(ctx, "list tickets", http.MethodGet, ticketsPath, FilterQuery(filter), nil)
	if err != nil {
		return nil, err
	}

	var tickets []models.Ticket
	if err := decode("list tickets", data, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}

// CreateTicket submits a draft and returns the ticket the store created.
func (c *Client) CreateTicket(ctx context.Context, draft models.Draft) (models.Ticket, error) {
	data, err := c.do(ctx, "create ticket", http.MethodPost, ticketsPath, nil, draft)
	if err != nil {
		return models.Ticket{}, err
	}

	var ticket models.Ticket
	if err := decode("create ticket", data, &ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// UpdateStatus patches the status of a single ticket. The store may answer
// with an empty body, in which case the returned ticket is nil.
func (c *Client) UpdateStatus(ctx context.Context, id models.TicketID, status models.Status) (*models.Ticket, error) {
	path := ticketsPath + url.PathEscape(id.String()) + "/"
	body := map[string]models.Status{"status": status}

	data, err := c.do(ctx, "update ticket status", http.MethodPatch, path, nil, body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var ticket models.Ticket
	if err := decode("update ticket status", data, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Stats fetches the aggregate statistics snapshot.
func (c *Client) Stats(ctx context.Context) (models.StatsSnapshot, error) {
	data, err := c.do(ctx, "fetch stats", http.MethodGet, statsPath, nil, nil)
	if err != nil {
		return models.StatsSnapshot{}, err
	}

	var stats models.StatsSnapshot
	if err := decode("fetch stats", data, &stats); err != nil {
		return models.StatsSnapshot{}, err
	}
	return stats, nil
}

// Classify asks the store's classifier for a category and priority
// suggestion for description.
func (c *Client) Classify(ctx context.Context, description string) (models.Suggestion, error) {
	body := map[string]string{"description": description}

	data, err := c.do(ctx, "classify description", http.MethodPost, classifyPath, nil, body)
	if err != nil {
		return models.Suggestion{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Suggestion{}, nil
	}

	var suggestion models.Suggestion
	if err := decode("classify description", data, &suggestion); err != nil {
		return models.Suggestion{}, err
	}
	return suggestion, nil
}

// FilterQuery serializes the set fields of filter as query parameters.
func FilterQuery(filter models.Filter) url.Values {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Priority != "" {
		query.Set("priority", string(filter.Priority))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	return query
}

// do sends one request and returns the raw response body. Any non-2xx
// status becomes an *APIError; the body is not inspected for detail.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("ticket store request failed",
			"op", op,
			"request_id", requestID,
			"error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	logging.Debug("ticket store request",
		"op", op,
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Op:         op,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
		}
	}
	return data, nil
}

func decode(op string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
