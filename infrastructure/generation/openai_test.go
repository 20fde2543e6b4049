package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "saju-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validText = "Small pauses in the day may offer more room to think than expected. A slower pace can often reveal what matters."

func chatBody(insightText string) string {
	payload, _ := json.Marshal(map[string]string{"insightText": insightText})
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": string(payload)}},
		},
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

// newTestClient builds a client against a test server with a recording
// sleeper so retries do not actually wait.
func newTestClient(t *testing.T, serverURL string, timeout time.Duration) (*Client, *[]time.Duration) {
	t.Helper()

	client := NewClient(ClientConfig{
		BaseURL:     serverURL,
		APIKey:      "test-key",
		Model:       "test-model",
		Timeout:     timeout,
		MaxRetries:  2,
		BackoffBase: time.Second,
		MaxTokens:   120,
	}, zap.NewNop()).(*Client)

	var waits []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	return client, &waits
}

func TestGenerateSucceedsFirstAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		assert.Equal(t, 0.7, req["temperature"])
		assert.Equal(t, float64(120), req["max_tokens"])

		fmt.Fprint(w, chatBody(validText))
	}))
	defer server.Close()

	client, waits := newTestClient(t, server.URL, 5*time.Second)
	got, err := client.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, validText, got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Empty(t, *waits)
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chatBody(validText))
	}))
	defer server.Close()

	client, waits := newTestClient(t, server.URL, 5*time.Second)
	got, err := client.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, validText, got)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	// Backoff doubles: 1s before the second attempt, 2s before the third.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestGenerateExhaustsRetriesOnProviderErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGenerationFailed))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateFinalTimeoutIsDeadlineExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
			fmt.Fprint(w, chatBody(validText))
		}
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 30*time.Millisecond)
	_, err := client.Generate(context.Background(), "prompt")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDeadlineExceeded))
}

func TestGenerateRejectsShortOutput(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, chatBody("too short"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")

	// Short output is a retryable failure, never a short success.
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGenerationFailed))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateRejectsMalformedModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"not json at all"}}]}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGenerationFailed))
}

func TestGenerateRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "prompt")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeGenerationFailed))
}
