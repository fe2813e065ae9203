package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Client sends single JSON requests to the travel backend. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

func NewClient(baseURL string, timeout time.Duration, debug bool) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		debug:      debug,
	}
}

// Params are query parameters; nil values are skipped.
type Params map[string]any

type Request struct {
	Method string
	Path   string
	Params Params
	Body   any
	Header http.Header
}

// RequestError is returned for any non-2xx response. Body holds the decoded
// JSON payload when the response was JSON, otherwise the raw text.
type RequestError struct {
	Status  int
	Message string
	Body    any
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// Credentials travel with the context so one Client can serve many sessions.
type Credentials struct {
	Token string
	Jar   http.CookieJar
}

type credentialsKey struct{}

func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

func CredentialsFrom(ctx context.Context) *Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(*Credentials)
	return creds
}

// Do performs the request and decodes a JSON response into out (if non-nil).
// A text response is copied into out when out is a *string.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.buildURL(r.Path, r.Params)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	hc := c.httpClient
	if creds := CredentialsFrom(ctx); creds != nil {
		if creds.Token != "" {
			req.Header.Set("Authorization", "Bearer "+creds.Token)
		}
		if creds.Jar != nil {
			scoped := *c.httpClient
			scoped.Jar = creds.Jar
			hc = &scoped
		}
	}

	if c.debug {
		slog.Debug("api request", "method", method, "url", target, "body", r.Body)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, r.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	isJSON := strings.Contains(contentType, "application/json")

	var parsed any
	if isJSON {
		if err := decodeJSON(raw, &parsed); err != nil {
			parsed = nil
		}
	} else {
		parsed = string(raw)
	}

	if c.debug {
		preview := parsed
		if !isJSON {
			preview = truncate(string(raw), 200)
		}
		slog.Debug("api response", "status", resp.StatusCode, "url", target, "content_type", contentType, "preview", preview)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(parsed, resp.StatusCode),
			Body:    parsed,
		}
	}

	if out == nil {
		return nil
	}
	if !isJSON {
		if s, ok := out.(*string); ok {
			*s = string(raw)
		}
		return nil
	}
	if parsed == nil {
		return nil
	}
	if err := decodeJSON(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Path, err)
	}
	return nil
}

func (c *Client) buildURL(path string, params Params) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return u.String(), nil
	}

	q := u.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decodeJSON keeps numbers as json.Number inside untyped values so ids survive intact.
func decodeJSON(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(out)
}

func errorMessage(body any, status int) string {
	if m, ok := body.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func escape(id string) string {
	return url.PathEscape(id)
}
