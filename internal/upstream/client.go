package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrInvalidResponse marks a 2xx reply whose body could not be decoded.
var ErrInvalidResponse = errors.New("invalid server response")

// Error is a non-2xx upstream reply with the best-effort message pulled
// from the response body.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

// Client talks to the external ATS backend. Every call carries the caller's
// bearer token; the client holds no credentials of its own. There is no
// retry and no de-duplication of concurrent identical requests.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) doMultipart(ctx context.Context, token, path string, fields map[string]string, repeated map[string][]string, fileName string, file []byte, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("upstream: build form: %w", err)
		}
	}
	for name, values := range repeated {
		for _, value := range values {
			if err := w.WriteField(name, value); err != nil {
				return fmt.Errorf("upstream: build form: %w", err)
			}
		}
	}
	if len(file) > 0 {
		fw, err := w.CreateFormFile("file", fileName)
		if err != nil {
			return fmt.Errorf("upstream: build form: %w", err)
		}
		if _, err := fw.Write(file); err != nil {
			return fmt.Errorf("upstream: build form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upstream: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("upstream: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": resp.StatusCode,
		}).Warn("upstream request failed")
		return &Error{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// extractMessage pulls a human-readable message from an error body,
// tolerating both {"error": ...} and {"message": ...} shapes.
func extractMessage(raw []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" && len(msg) <= 200 {
		return msg
	}
	return "request failed"
}

// decodeList tolerates the list shapes the backend emits: a bare
// array, {"<key>": [...]}, and {"data": [...]}.
func decodeList(raw json.RawMessage, key string) []map[string]interface{} {
	var bare []map[string]interface{}
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil
	}
	for _, k := range []string{key, "data", "items", "results"} {
		inner, ok := wrapped[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &bare); err == nil {
			return bare
		}
	}
	return nil
}
