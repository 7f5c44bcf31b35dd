package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/reelfind/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Reelfind/1.0"

	analyzePath = "/analyze/"
	statusPath  = "/status/"
)

// Client implements domain.AnalysisRepository over the backend's JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new analysis API client.
// A nil limiter disables client-side rate limiting.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Submit starts an analysis job for the clip URL
func (c *Client) Submit(ctx context.Context, url string) (domain.JobID, error) {
	body, err := c.doRequest(ctx, "analysis", analyzePath, AnalyzeRequest{TikTokURL: url})
	if err != nil {
		return "", err
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse analysis response: %v", domain.ErrProtocol, err)
	}
	if err := resp.validate(); err != nil {
		return "", err
	}

	c.logger.Info("analysis job started", "jobID", *resp.JobID)
	return domain.JobID(*resp.JobID), nil
}

// Poll fetches the status of a job
func (c *Client) Poll(ctx context.Context, id domain.JobID) (*domain.StatusPayload, error) {
	body, err := c.doRequest(ctx, "status", statusPath, StatusRequest{JobID: string(id)})
	if err != nil {
		return nil, err
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse status response: %v", domain.ErrProtocol, err)
	}
	if err := resp.validate(); err != nil {
		return nil, err
	}

	payload := MapStatus(resp)
	c.logger.Debug("job status", "jobID", id, "status", payload.Status)
	return payload, nil
}

// doRequest POSTs a JSON body and returns the response body on 2xx
func (c *Client) doRequest(ctx context.Context, op, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.RequestFailedError{Op: op, Err: err}
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("backend request", "method", http.MethodPost, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "op", op, "error", err)
		return nil, &domain.RequestFailedError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RequestFailedError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("backend request error", "op", op, "status", resp.StatusCode, "body", string(body))
		return nil, &domain.RequestFailedError{Op: op, StatusCode: resp.StatusCode}
	}

	return body, nil
}
