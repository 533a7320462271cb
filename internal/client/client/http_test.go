package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
)

type memTokens struct {
	access, refresh string
	saves           int
}

func (m *memTokens) Tokens(context.Context) (string, string, error) { return m.access, m.refresh, nil }

func (m *memTokens) SaveTokens(_ context.Context, access, refresh string) error {
	m.access, m.refresh = access, refresh
	m.saves++
	return nil
}

func newTestClient(t *testing.T, h http.Handler, tokens TokenStore) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL+"/", time.Second, tokens)
	c.delay = 0
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestCall_RefreshesOnceOn401(t *testing.T) {
	var meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"token_expired","message":"token expired"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"u1","username":"alice"}}`)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"refresh_token":"r1"}`, string(body))
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"access_token":"fresh","refresh_token":"r2","token_type":"bearer"}}`)
	})

	tokens := &memTokens{access: "stale", refresh: "r1"}
	c := newTestClient(t, mux, tokens)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, int32(2), meCalls.Load())
	assert.Equal(t, "fresh", tokens.access)
	assert.Equal(t, "r2", tokens.refresh)
	assert.Equal(t, 1, tokens.saves)
}

func TestCall_RefreshFailureReturnsUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/planner/plans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"invalid_token","message":"invalid token"}}`)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"token_expired","message":"refresh token expired"}}`)
	})

	tokens := &memTokens{access: "a", refresh: "r"}
	c := newTestClient(t, mux, tokens)

	_, err := c.ListPlans(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_token", apiErr.Code)
	assert.Equal(t, 0, tokens.saves)
}

func TestCall_NoRefreshTokenSkipsRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false,"error":{"code":"unauthorized","message":"missing bearer token"}}`)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})

	c := newTestClient(t, mux, &memTokens{})
	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, refreshCalls.Load())
}

func TestErrorsAndNoContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/planner/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":{"code":"not_found","message":"not found"}}`)
	})
	mux.HandleFunc("DELETE /api/planner/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/summarize-document", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"success":false,"error":{"code":"ai_unavailable","message":"AI service is unavailable"}}`)
	})

	c := newTestClient(t, mux, &memTokens{access: "a"})
	ctx := context.Background()

	_, err := c.GetPlan(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "not found (not_found)")

	assert.NoError(t, c.DeletePlan(ctx, "p1"))

	_, err = c.Summarize(ctx, "notes.txt", []byte("x"), "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSummarize_SendsMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/summarize-document", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "notes.md", hdr.Filename)
		assert.Equal(t, "# Title", string(data))
		assert.Equal(t, "why?", r.FormValue("question"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"type":"qa","answer":"because"}}`)
	})

	c := newTestClient(t, mux, &memTokens{access: "a"})
	s, err := c.Summarize(context.Background(), "notes.md", []byte("# Title"), "why?")
	require.NoError(t, err)
	assert.Equal(t, "because", s.Answer)
}

func TestFindResources_Query(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resources/find", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "go lang", q.Get("topic"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "2", q.Get("limit"))
		assert.Empty(t, q.Get("difficulty"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"topic":"go lang","count":1,"resources":[{"id":"r1","title":"Go"}]}}`)
	})

	c := newTestClient(t, mux, &memTokens{access: "a"})
	got, err := c.FindResources(context.Background(), "go lang", "", "video", 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Resource{{ID: "r1", Title: "Go"}}, got)
}

func TestUnavailable_RetriesThenFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewHTTPClient(addr, 200*time.Millisecond, nil)
	c.delay = 0
	c.attempts = 2

	err := c.Health(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}

func TestTimeout_WriteIsNotResent(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/planner/generate", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
	})
	c := newTestClient(t, mux, nil)
	t.Cleanup(func() { close(release) })
	c.http.Timeout = 50 * time.Millisecond

	_, err := c.GeneratePlan(context.Background(), models.PlanRequest{Subject: "Go", DailyHours: 2, TotalDays: 3})
	assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTimeout_ReadIsRetried(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"status":"ok"}}`)
	})
	c := newTestClient(t, mux, nil)
	t.Cleanup(func() { close(release) })
	c.http.Timeout = 50 * time.Millisecond

	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestResendable(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	read := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("i/o timeout")}

	assert.True(t, resendable(http.MethodPost, &url.Error{Op: "Post", URL: "http://x", Err: dial}))
	assert.False(t, resendable(http.MethodPost, &url.Error{Op: "Post", URL: "http://x", Err: read}))
	assert.False(t, resendable(http.MethodDelete, read))
	assert.True(t, resendable(http.MethodGet, read))
}
