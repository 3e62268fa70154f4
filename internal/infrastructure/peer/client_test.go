package peer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-microservices/internal/shared/middleware"
	"bookstore-microservices/internal/shared/response"
	"bookstore-microservices/pkg/metrics"
)

func TestAccountClientGetUser(t *testing.T) {
	var gotRequestID atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID.Store(r.Header.Get(middleware.RequestIDHeader))
		switch r.URL.Path {
		case "/users/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1,"email":"a@b.io","name":"Alice","createdAt":"2024-01-01T00:00:00Z"}`))
		case "/users/2":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"user not found"}}`))
		case "/users/3":
			w.WriteHeader(http.StatusInternalServerError)
		case "/users/4":
			_, _ = w.Write([]byte(`{"id":`))
		}
	}))
	defer srv.Close()

	m := metrics.New("order")
	client := NewAccountClient(srv.URL+"/", time.Second, m)
	ctx := middleware.WithRequestID(context.Background(), "req-123")

	t.Run("ok", func(t *testing.T) {
		u, err := client.GetUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "req-123", gotRequestID.Load())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetUser(ctx, 2)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GetUser(ctx, 3)
		assert.ErrorIs(t, err, ErrUnavailable)

		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
		assert.Equal(t, "account", perr.Peer)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := client.GetUser(ctx, 4)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeerCalls.WithLabelValues("account", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PeerCalls.WithLabelValues("account", "not_found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PeerCalls.WithLabelValues("account", "error")))
}

func TestCatalogClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewCatalogClient(srv.URL, 50*time.Millisecond, nil)

	start := time.Now()
	_, err := client.GetBook(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCatalogClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewCatalogClient(url, time.Second, nil)
	_, err := client.GetBook(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewCatalogClient(srv.URL, time.Second, nil).Ping(context.Background()))
}

func TestUnknownRouteIsNotAMissingResource(t *testing.T) {
	// base URL trỏ nhầm service: 404 dạng text của router
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("404 page not found"))
	}))
	defer srv.Close()

	_, err := NewAccountClient(srv.URL, time.Second, nil).GetUser(context.Background(), 1)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
}

func TestNotFoundEnvelopeFromRealHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/livres/:id", func(c *gin.Context) { response.NotFound(c, "book not found") })
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewCatalogClient(srv.URL, time.Second, nil)

	_, err := client.GetBook(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)

	// cùng server, route không có -> 404 của gin, không phải "book not found"
	wrong := NewCatalogClient(srv.URL+"/v2", time.Second, nil)
	_, err = wrong.GetBook(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUnavailable)
}
