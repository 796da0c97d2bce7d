package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rorical/WolofBridge/internal/core"
	"github.com/Rorical/WolofBridge/internal/models"
)

const (
	ProcessPath = "/process"
	userAgent   = "WolofBridge/1.0"
	// RequestIDHeader carries the per-call correlation id.
	RequestIDHeader = "X-Request-ID"
)

// ProcessClient posts queries to the /process endpoint of a backend.
type ProcessClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the backend at endpoint (scheme and host, optional
// path prefix). The http.Client has no timeout; callers bound calls through
// the context.
func New(endpoint string, logger *zap.Logger) *ProcessClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying transport client.
func (c *ProcessClient) WithHTTPClient(hc *http.Client) *ProcessClient {
	c.httpClient = hc
	return c
}

func (c *ProcessClient) URL() string {
	return c.endpoint + ProcessPath
}

// Process sends one request and returns the raw success body. Non-2xx
// responses become SERVER_ERROR; transport failures become UNEXPECTED_ERROR.
func (c *ProcessClient) Process(ctx context.Context, req models.QueryRequest) (json.RawMessage, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("url", c.URL()))

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, core.NewUnexpectedError(fmt.Errorf("failed to encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, core.NewUnexpectedError(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)

	log.Debug("Sending query", zap.Int("query_length", len(req.Query)))
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("Request failed", zap.Error(err))
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("Failed to read response", zap.Error(err))
		return nil, transportError(ctx, err)
	}

	log.Info("Received response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.NewServerError(resp.StatusCode, serverMessage(body))
	}
	return json.RawMessage(body), nil
}

// serverMessage extracts {"error": "..."} from a failure body, or returns ""
// so the caller synthesizes a status-based message.
func serverMessage(body []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.Error
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &core.QueryError{Kind: core.KindUnexpected, Message: "Request timed out", Err: err}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return &core.QueryError{Kind: core.KindUnexpected, Message: "Request cancelled", Err: err}
	}
	return core.NewUnexpectedError(fmt.Errorf("network error: %w", err))
}
