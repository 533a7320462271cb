package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
)

func get(url string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		return ReadBody(resp)
	}
}

func fastCaller(name string, threshold uint32) *Caller {
	return NewCaller(Options{Name: name, Attempts: 3, Delay: time.Millisecond, FailureThreshold: threshold}, logging.Nop{})
}

func TestCaller_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := fastCaller("retry-test", 10).Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestCaller_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := fastCaller("no-retry-test", 10).Do(context.Background(), get(srv.URL))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCaller_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := fastCaller("breaker-test", 2)
	for i := 0; i < 2; i++ {
		_, err := c.Do(context.Background(), get(srv.URL))
		require.ErrorIs(t, err, ErrUnavailable)
	}
	seen := calls.Load()

	_, err := c.Do(context.Background(), get(srv.URL))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, seen, calls.Load(), "open breaker must not reach the server")
}

func TestCaller_ClientErrorsKeepBreakerClosed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "prompt too large", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := fastCaller("client-error-breaker-test", 2)
	for i := 0; i < 4; i++ {
		_, err := c.Do(context.Background(), get(srv.URL))
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"canceled", context.Canceled, true},
		{"bad request", &StatusError{StatusCode: http.StatusBadRequest}, true},
		{"not found", &StatusError{StatusCode: http.StatusNotFound}, true},
		{"too many requests", &StatusError{StatusCode: http.StatusTooManyRequests}, false},
		{"server error", &StatusError{StatusCode: http.StatusBadGateway}, false},
		{"transport", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, healthy(tt.err))
		})
	}
}

func TestCaller_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastCaller("cancel-test", 10).Do(ctx, func(context.Context) ([]byte, error) {
		return []byte("unreachable"), nil
	})
	assert.ErrorIs(t, err, ErrUnavailable)
}
