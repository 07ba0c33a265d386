package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 32 << 20

// StatusError is a non-2xx reply. Body holds the provider's error payload.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// JSONPoster sends JSON requests to a provider REST endpoint.
type JSONPoster struct {
	Client  *http.Client // nil means a client with no timeout
	Headers map[string]string
	Logger  *slog.Logger
}

// Post encodes body, POSTs it to url and returns the response body. A non-2xx
// reply returns *StatusError carrying the body for provider-specific decoding.
func (p JSONPoster) Post(ctx context.Context, url string, body any) ([]byte, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := p.Client
	if client == nil {
		client = &http.Client{}
	}

	reqID := uuid.New().String()
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("llm.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	logger.Debug("llm.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"sent", len(payload),
		"received", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}
