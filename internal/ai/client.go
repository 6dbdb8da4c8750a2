// Package ai wraps the Azure OpenAI chat-completions endpoint behind a small
// client. Callers treat a nil client as "not configured" and take their
// deterministic fallback path instead; nothing in this package retries.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pannonhealth/lifeline/internal/shared/config"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
	"golang.org/x/time/rate"
)

// Client is an immutable handle on one Azure OpenAI deployment, reused
// across requests.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	url     string
	apiKey  string
}

// NewClient builds a client from configuration. Returns nil when the
// configuration is absent or carries placeholder credentials; callers must
// treat nil as "skip the network call entirely".
func NewClient(cfg config.AIConfig) *Client {
	if !cfg.Configured() {
		return nil
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		endpoint, url.PathEscape(cfg.Deployment), url.QueryEscape(cfg.APIVersion))

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		url:     u,
		apiKey:  cfg.APIKey,
	}
}

// ChatRequest describes a single chat-completion call.
type ChatRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSONObject  bool
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat *responseShape `json:"response_format,omitempty"`
	Messages       []chatMessage  `json:"messages"`
}

type responseShape struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete issues one chat-completion request and returns the trimmed
// message content. Any failure is returned as an error; there is no retry.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	payload := chatPayload{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	if req.JSONObject {
		payload.ResponseFormat = &responseShape{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RecordAIRequest("error", time.Since(start))
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordAIRequest("error", time.Since(start))
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.RecordAIRequest("error", time.Since(start))
		return "", fmt.Errorf("decode response: %w", err)
	}
	metrics.RecordAIRequest("ok", time.Since(start))

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("model returned empty content")
	}

	return content, nil
}
