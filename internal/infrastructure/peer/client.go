package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookstore-microservices/internal/shared/middleware"
	"bookstore-microservices/internal/shared/response"
	"bookstore-microservices/pkg/metrics"
)

// peer bodies are single small resources
const maxBodyBytes = 1 << 20

// Client gọi một peer service qua HTTP/JSON với timeout cố định.
// Không retry: mỗi lookup là đúng một request.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func newClient(name, baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// getJSON: 200 -> decode vào dest, 404 -> ErrNotFound, còn lại -> *Error
func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) (err error) {
	start := time.Now()
	defer func() { c.observe(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Peer: c.name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if id := middleware.RequestIDFrom(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Peer: c.name, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound && isNotFoundEnvelope(resp.Body):
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		// 404 không có envelope = route không tồn tại (sai base URL), không phải resource thiếu
		return &Error{Peer: c.name, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dest); err != nil {
		return &Error{Peer: c.name, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

// isNotFoundEnvelope: peer trả {"success":false,"error":{"code":"NOT_FOUND",...}}
func isNotFoundEnvelope(body io.Reader) bool {
	var env response.Response
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&env); err != nil {
		return false
	}
	return env.Error != nil && env.Error.Code == response.CodeNotFound
}

// Ping gọi GET /health của peer, dùng cho health check của order service
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &Error{Peer: c.name, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Peer: c.name, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode != http.StatusOK {
		return &Error{Peer: c.name, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	c.metrics.PeerCalls.WithLabelValues(c.name, outcome).Inc()
	c.metrics.PeerLatency.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
}
