// Package directory is an HTTP client for the member endpoints of the gym
// API. It lets tools outside the server drive a roster remotely.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gimnasio/gym-system/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.SocioDirectory over HTTP with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

type listResponse struct {
	Data []domain.Socio `json:"data"`
}

type createResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Create(ctx context.Context, s domain.Socio) (string, error) {
	var out createResponse
	if err := c.do(ctx, http.MethodPost, "/v1/socios", s, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("directory: create response without id")
	}
	return out.ID, nil
}

// GetAll asks the server to reload from its store first, so the list reflects
// changes made by other users.
func (c *Client) GetAll(ctx context.Context) ([]domain.Socio, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/v1/socios?refresh=true", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []domain.Socio{}
	}
	return out.Data, nil
}

func (c *Client) Update(ctx context.Context, id string, patch domain.SocioPatch) error {
	return c.do(ctx, http.MethodPatch, "/v1/socios/"+url.PathEscape(id), patch, nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/socios/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("directory: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("directory: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("directory: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("directory: decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var e errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&e)
	msg := e.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrNotAuthenticated
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, msg)
	case http.StatusNotFound:
		return domain.ErrSocioNotFound
	default:
		return errors.New(msg)
	}
}
