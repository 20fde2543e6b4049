// Package generation implements the outbound text-generation client.
// It owns the per-attempt timeout, the retry budget with exponential
// backoff, and validation of the provider's response contract.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"saju-backend/application/ports"
	apperrors "saju-backend/pkg/errors"

	"go.uber.org/zap"
)

// minInsightLength is the shortest acceptable generated text. Shorter
// output is treated as a failed attempt, not returned to the caller.
const minInsightLength = 40

// temperature is fixed: high enough for daily variety, low enough to
// keep the two-sentence contract stable.
const temperature = 0.7

// ClientConfig configures the generation client. All provider state is
// injected here; the client holds no ambient globals.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	MaxTokens   int
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *zap.Logger

	// sleep is the backoff wait, context-aware and replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a generation client.
func NewClient(config ClientConfig, logger *zap.Logger) ports.TextGenerator {
	if config.Timeout == 0 {
		config.Timeout = 25 * time.Second
	}
	if config.BackoffBase == 0 {
		config.BackoffBase = time.Second
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 120
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			// Slightly above the per-attempt deadline so the context,
			// not the transport, decides timeouts.
			Timeout: config.Timeout + 5*time.Second,
		},
		logger: logger,
		sleep:  sleepContext,
	}
}

// chat-completions wire types, limited to the fields this client
// consumes.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat responseFmt   `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// insightPayload is the contract the model must honor: one JSON object
// with one field, nothing else consumed.
type insightPayload struct {
	InsightText string `json:"insightText"`
}

// Generate issues up to MaxRetries+1 attempts, each bounded by the
// per-attempt timeout, waiting BackoffBase*2^n before retry n. Any
// attempt failure (timeout, provider error, malformed or short output)
// is retried; only the final outcome crosses this boundary.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	lastTimedOut := false

	attempts := c.config.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := c.config.BackoffBase << (attempt - 1)
			if err := c.sleep(ctx, backoff); err != nil {
				lastErr = err
				lastTimedOut = true
				break
			}
		}

		text, err := c.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err
		lastTimedOut = isTimeout(err)
		c.logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt+1),
			zap.Bool("timeout", lastTimedOut),
			zap.Error(err),
		)
	}

	if lastTimedOut {
		return "", apperrors.NewDeadlineExceeded("insight generation timed out").WithCause(lastErr)
	}
	return "", apperrors.NewGenerationFailed("insight generation failed").WithCause(lastErr)
}

// attempt performs one atomic provider call. No partial or streamed
// output is accepted.
func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:          c.config.Model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    temperature,
		MaxTokens:      c.config.MaxTokens,
		ResponseFormat: responseFmt{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused across retries.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("provider response contained no choices")
	}

	var payload insightPayload
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &payload); err != nil {
		return "", fmt.Errorf("model output is not a JSON object: %w", err)
	}
	if utf8.RuneCountInString(payload.InsightText) < minInsightLength {
		return "", fmt.Errorf("model output too short: %d characters", utf8.RuneCountInString(payload.InsightText))
	}

	return payload.InsightText, nil
}

// isTimeout reports whether an attempt failed on its deadline rather
// than on a provider or validation error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// sleepContext waits for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
