// Package api is the client of the MoiBook REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

// StatusError is returned for any non-2xx answer. 4xx and 5xx are not told
// apart beyond the code.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the backend rejected the session.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden)
}

type Client struct {
	baseUrl           string
	http              *http.Client
	returnsCreatePath string
	returnsTotalPath  string
	session           *model.AuthSession
}

func New(cfg config.BackendConfig) *Client {
	return &Client{
		baseUrl:           strings.TrimRight(cfg.BaseURL, "/"),
		http:              &http.Client{Timeout: cfg.Timeout},
		returnsCreatePath: cfg.ReturnsCreatePath,
		returnsTotalPath:  cfg.ReturnsTotalPath,
	}
}

// WithSession returns a copy of c that authenticates as s. The receiver is
// left untouched, so one Client can serve many sessions.
func (c *Client) WithSession(s *model.AuthSession) *Client {
	cp := *c
	cp.session = s
	return &cp
}

func (c *Client) Session() *model.AuthSession {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.session.AccessToken))
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: res.StatusCode,
			Message:    errorMessage(res.Body),
		}
	}

	return res, nil
}

// do issues a JSON request and decodes the answer into out, if out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	res, err := c.send(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls "message" (or "error") out of an error body, falling back
// to the raw text.
func errorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(b) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(b))
}
