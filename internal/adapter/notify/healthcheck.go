package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	pingTimeout  = 10 * time.Second
	pingAttempts = 3
)

// Healthcheck pings a healthchecks-style monitoring endpoint: the base URL
// on success, /start when the run begins, /fail with the exit code when it
// fails. A short timeout and bounded retries keep a monitoring outage from
// hanging the run; the caller discards the returned error.
type Healthcheck struct {
	baseURL string
	client  *http.Client
}

func NewHealthcheck(baseURL string) *Healthcheck {
	return &Healthcheck{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: pingTimeout},
	}
}

func (h *Healthcheck) Start(ctx context.Context) error {
	return h.ping(ctx, "/start", "")
}

func (h *Healthcheck) Success(ctx context.Context, message string) error {
	return h.ping(ctx, "", message)
}

func (h *Healthcheck) Failure(ctx context.Context, exitCode int, message string) error {
	return h.ping(ctx, "/fail", fmt.Sprintf("exit=%d %s", exitCode, message))
}

func (h *Healthcheck) ping(ctx context.Context, suffix, payload string) error {
	if h.baseURL == "" {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if lastErr = h.send(ctx, h.baseURL+suffix, payload); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	return fmt.Errorf("ping %s failed after %d attempts: %w", suffix, pingAttempts, lastErr)
}

func (h *Healthcheck) send(ctx context.Context, url, payload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("ping rejected with status %d", resp.StatusCode)
	}
	return nil
}
