// Package backend is the client's HTTP wrapper around the Asset-Track API.
// Response bodies are camel-cased before decoding and request bodies are
// snake-cased before sending, so client types use camelCase JSON tags.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/casing"
)

// APIKeyHeader carries the anonymous key on every /api/v1 call.
const APIKeyHeader = "apikey"

const apiPrefix = "/api/v1"

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger

	mu    sync.RWMutex
	token string
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL, apiKey string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient, log: log}
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends one API call. body is snake-cased; the response is camel-cased
// into out. Non-2xx answers become *apperr.Error with the backend's kind;
// transport failures are KindBackend.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := encodeSnake(body)
		if err != nil {
			return apperr.Wrap(apperr.KindInvalid, op, err)
		}
		reader = bytes.NewReader(payload)
	}

	raw, _, err := c.send(ctx, method, apiPrefix+path, query, reader)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeCamel(raw, out); err != nil {
		return apperr.Wrap(apperr.KindBackend, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Download fetches a binary resource (PDF, XLSX) and returns it with the
// response headers.
func (c *Client) Download(ctx context.Context, path string, query url.Values) ([]byte, http.Header, error) {
	return c.send(ctx, http.MethodGet, apiPrefix+path, query, nil)
}

// Health probes the unauthenticated /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.send(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, http.Header, error) {
	op := method + " " + path

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindBackend, op, err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return nil, nil, apperr.Wrap(apperr.KindBackend, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindBackend, op, err)
	}
	if resp.StatusCode >= 300 {
		e := decodeError(op, resp.StatusCode, raw)
		c.log.Debug("request rejected", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("kind", string(e.Kind)))
		return nil, nil, e
	}
	return raw, resp.Header, nil
}

type errorBody struct {
	Error struct {
		Kind    apperr.Kind `json:"kind"`
		Message string      `json:"message"`
	} `json:"error"`
}

func decodeError(op string, status int, raw []byte) *apperr.Error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error.Kind == "" {
		return &apperr.Error{Kind: apperr.KindFromStatus(status), Op: op, Msg: http.StatusText(status)}
	}
	return &apperr.Error{Kind: body.Error.Kind, Op: op, Msg: body.Error.Message}
}

func encodeSnake(v any) ([]byte, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(casing.ToSnakeCase(doc))
}

func decodeCamel(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	camel, err := json.Marshal(casing.ToCamelCase(doc))
	if err != nil {
		return err
	}
	return json.Unmarshal(camel, out)
}

func toDocument(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
