package api

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

	"memento/internal/client/models"
	"memento/internal/logging"
)

// HTTPClient talks JSON over HTTP to the journal backend. The bearer token,
// when set, is attached to every request. Every request also carries an
// X-Request-ID header so client and server logs can be correlated.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.token = ""
}

// do sends req and decodes a 2xx JSON body into out (skipped when out is nil
// or the response is 204 No Content). Non-2xx responses become sentinel or
// *APIError values via mapError.
func (c *HTTPClient) do(req *http.Request, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "error", err)
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(req.Context(), resp, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapError converts a non-2xx response into an error. The body is expected
// to carry {"detail": "..."}; if it does not parse, the message falls back
// to "HTTP <status>" (APIError renders that from the bare status).
func (c *HTTPClient) mapError(ctx context.Context, resp *http.Response, requestID string) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
	}

	c.log.Debug(ctx, "request rejected", "status", resp.StatusCode, "detail", apiErr.Detail, "request_id", requestID)
	return apiErr
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "username": username, "password": password}

	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The endpoint follows the
// OAuth2 password-flow convention: the body is form-encoded and the email is
// sent in the username field.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) GetMe(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, filter models.ListFilter) (*models.EntryList, error) {
	path := "/api/entries"
	if q := filter.Query().Encode(); q != "" {
		path += "?" + q
	}

	var list models.EntryList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, payload models.EntryPayload) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := c.doJSON(ctx, http.MethodPost, "/api/entries", payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, id string, update models.EntryUpdate) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := c.doJSON(ctx, http.MethodPut, "/api/entries/"+url.PathEscape(id), update, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/entries/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ToggleFavorite(ctx context.Context, id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := c.doJSON(ctx, http.MethodPatch, "/api/entries/"+url.PathEscape(id)+"/favorite", nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
