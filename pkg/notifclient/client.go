// Package notifclient adalah klien Go untuk API notifikasi: list, unread
// count, mark-as-read, plus Tracker untuk update optimistik di sisi klien.
package notifclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Judul     string    `json:"judul"`
	Pesan     string    `json:"pesan"`
	Tipe      string    `json:"tipe"`
	Dibaca    bool      `json:"dibaca"`
	CreatedAt time.Time `json:"created_at"`
}

// APIError: server menjawab dengan penolakan bersih (status non-2xx plus
// body envelope). Dibedakan dari error transport supaya Tracker tahu kapan
// rollback parsial cukup dan kapan harus reconcile penuh.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notification api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient dipakai di test untuk menyuntik client httptest.
func NewWithHTTPClient(baseURL, token string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, token: token, httpClient: httpClient}
}

func (c *Client) List(ctx context.Context, page, perPage int) ([]Notification, error) {
	path := fmt.Sprintf("/api/notifikasi?page=%d&per_page=%d", page, perPage)
	var result []Notification
	if err := c.do(ctx, http.MethodGet, path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifikasi/unread-count", &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPatch, "/api/notifikasi/"+id.String()+"/read", nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/api/notifikasi/read-all", nil)
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("notification api read body: %w", err)
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: string(body)}
		}
		return fmt.Errorf("notification api decode: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := sonic.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("notification api decode data: %w", err)
		}
	}
	return nil
}
