package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
	"github.com/dmitrijs2005/studyplanner/internal/common"
)

const contentTypeJSON = "application/json"

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	tokens   TokenStore
	attempts uint
	delay    time.Duration

	refreshMu sync.Mutex
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL, e.g. "http://127.0.0.1:8000".
// Connection failures are retried up to three times.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		attempts: 3,
		delay:    200 * time.Millisecond,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type payload struct {
	contentType string
	body        []byte
}

func jsonPayload(v any) (*payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return &payload{contentType: contentTypeJSON, body: b}, nil
}

// call sends an authenticated request. A 401 triggers one token refresh
// and one retry.
func (c *HTTPClient) call(ctx context.Context, method, path string, p *payload, out any) error {
	err := c.send(ctx, method, path, p, out, true)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}
	if rerr := c.refresh(ctx); rerr != nil {
		return err
	}
	return c.send(ctx, method, path, p, out, true)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, p *payload, out any, authed bool) error {
	var access string
	if authed && c.tokens != nil {
		a, _, err := c.tokens.Tokens(ctx)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		access = a
	}

	var resp *http.Response
	err := retry.Do(
		func() error {
			var body io.Reader
			if p != nil {
				body = bytes.NewReader(p.body)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if p != nil {
				req.Header.Set("Content-Type", p.contentType)
			}
			if access != "" {
				req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
			}

			r, err := c.http.Do(req)
			if err != nil {
				unavailable := fmt.Errorf("%w: %v", ErrUnavailable, err)
				if !resendable(method, err) {
					return retry.Unrecoverable(unavailable)
				}
				return unavailable
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrUnavailable) }),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decode(resp, out)
}

// resendable reports whether a request that failed in transport may be sent
// again. Writes are only repeated when the connection was never made.
func resendable(method string, err error) bool {
	var op *net.OpError
	if errors.As(err, &op) && op.Op == "dial" {
		return true
	}
	return method == http.MethodGet || method == http.MethodHead
}

func decode(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code, apiErr.Message = env.Error.Code, env.Error.Message
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair.
func (c *HTTPClient) refresh(ctx context.Context) error {
	if c.tokens == nil {
		return ErrUnauthorized
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	_, refreshToken, err := c.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	if refreshToken == "" {
		return ErrUnauthorized
	}

	p, err := jsonPayload(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}
	var pair models.TokenPair
	if err := c.send(ctx, http.MethodPost, "/api/auth/refresh", p, &pair, false); err != nil {
		return err
	}
	return c.tokens.SaveTokens(ctx, pair.AccessToken, pair.RefreshToken)
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/api/health", nil, nil, false)
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	p, err := jsonPayload(r)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.send(ctx, http.MethodPost, "/api/auth/register", p, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, login, password string) (*models.TokenPair, error) {
	p, err := jsonPayload(map[string]string{"username": login, "password": password})
	if err != nil {
		return nil, err
	}
	var pair models.TokenPair
	if err := c.send(ctx, http.MethodPost, "/api/auth/token", p, &pair, false); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	p, err := jsonPayload(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, "/api/auth/logout", p, nil, false)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.call(ctx, http.MethodGet, "/api/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	p, err := jsonPayload(req)
	if err != nil {
		return nil, err
	}
	var plan models.Plan
	if err := c.call(ctx, http.MethodPost, "/api/planner/generate", p, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *HTTPClient) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.call(ctx, http.MethodGet, "/api/planner/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *HTTPClient) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	if err := c.call(ctx, http.MethodGet, "/api/planner/plans/"+url.PathEscape(id), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *HTTPClient) DeletePlan(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/planner/plans/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) GetProgress(ctx context.Context, planID string) (*models.Progress, error) {
	var p models.Progress
	if err := c.call(ctx, http.MethodGet, "/api/planner/plans/"+url.PathEscape(planID)+"/progress", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProgress(ctx context.Context, planID string, completedHours int) (*models.Progress, error) {
	body, err := jsonPayload(map[string]int{"completed_hours": completedHours})
	if err != nil {
		return nil, err
	}
	var p models.Progress
	if err := c.call(ctx, http.MethodPost, "/api/planner/plans/"+url.PathEscape(planID)+"/progress", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) FindResources(ctx context.Context, topic, difficulty, resourceType string, limit int) ([]models.Resource, error) {
	q := url.Values{}
	q.Set("topic", topic)
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	if resourceType != "" {
		q.Set("type", resourceType)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Resources []models.Resource `json:"resources"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/resources/find?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

func (c *HTTPClient) Motivate(ctx context.Context, message, subject, planID string) (*models.MotivationResult, error) {
	p, err := jsonPayload(map[string]string{"message": message, "subject": subject, "plan_id": planID})
	if err != nil {
		return nil, err
	}
	var res models.MotivationResult
	if err := c.call(ctx, http.MethodPost, "/api/motivation", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Analyze(ctx context.Context, text string) (*models.Analysis, error) {
	p, err := jsonPayload(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	var a models.Analysis
	if err := c.call(ctx, http.MethodPost, "/api/text/analyze", p, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, filename string, data []byte, question string) (*models.Summary, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if question != "" {
		if err := mw.WriteField("question", question); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var s models.Summary
	p := &payload{contentType: mw.FormDataContentType(), body: buf.Bytes()}
	if err := c.call(ctx, http.MethodPost, "/api/summarize-document", p, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
