// Package backend is the typed client for the marketplace REST API. Every
// request attaches the stored bearer credential when one exists; the package
// never clears the store itself. Reacting to a 401/403 (lazy logout) is the
// calling layer's job — the portal's own expiry check is the primary defense
// and server-side rejection is the fallback trust boundary.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/config"
	"github.com/spec-kit/egresados-portal/internal/credstore"
	"github.com/spec-kit/egresados-portal/internal/observability"
)

// APIError is a non-2xx response from the backend, carrying the detail
// message it returned.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// AuthFailure reports whether the backend rejected the credential itself,
// meaning the session is no longer valid for the attempted action.
func (e *APIError) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// Client talks to the marketplace API.
type Client struct {
	http    *http.Client
	baseURL string
	creds   credstore.Store
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New builds a client for the configured backend.
func New(cfg config.BackendConfig, creds credstore.Store, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout()},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds:   creds,
		logger:  logger,
		metrics: metrics,
	}
}

// detailBody is the error envelope the backend uses for failures.
type detailBody struct {
	Detail string `json:"detail"`
}

// do performs one API call: marshals body, attaches the bearer credential and
// a correlation ID, maps non-2xx to *APIError, and decodes into out when
// given.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if token, err := c.creds.Get(ctx); err != nil {
		c.logger.Warn("credential store read failed, sending unauthenticated", zap.Error(err))
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.RecordBackendCall(path, method, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var detail detailBody
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		c.logger.Info("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
