package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Arishsingh/intern/internal/config"
	"github.com/Arishsingh/intern/internal/logger"
)

// Service is the remote chat backend. Chat returns the reply text, which is
// empty when the backend answered without a response field.
type Service interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

type Request struct {
	Prompt string `json:"prompt"`
}

type Client struct {
	endpoint string
	http     *http.Client
	lg       logger.Logger
	dump     bool
}

type headerRoundTripper struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

func New(endpoint string, timeout time.Duration, headers map[string]string, lg logger.Logger) *Client {
	if lg == nil {
		lg = logger.Nop()
	}
	hc := &http.Client{Timeout: timeout}
	if len(headers) > 0 {
		hc.Transport = &headerRoundTripper{
			headers: headers,
			base:    http.DefaultTransport,
		}
	}
	return &Client{
		endpoint: endpoint,
		http:     hc,
		lg:       lg,
	}
}

func NewFromConfig(lg logger.Logger) *Client {
	c := New(config.C.Service.Endpoint, config.C.Service.Timeout.Duration, config.C.Service.Headers, lg)
	c.dump = config.C.Debug
	return c
}

// Chat posts prompt and decodes the reply. The status code is not inspected:
// any body that parses as JSON is an answer, anything else is an error. An
// answer that is not an object or has no string response field yields "".
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	stamp := time.Now().Format("150405.000")
	if c.dump {
		c.lg.WriteJSON(fmt.Sprintf("request_%s.json", stamp), body)
	}
	c.lg.Debug("chat request", "endpoint", c.endpoint, "bytes", len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if c.dump {
		c.lg.WriteJSON(fmt.Sprintf("response_%s.json", stamp), raw)
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	text := replyText(out)
	c.lg.Debug("chat response", "status", resp.StatusCode, "empty", text == "")
	return text, nil
}

func replyText(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	text, _ := obj["response"].(string)
	return text
}
