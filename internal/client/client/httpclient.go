package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/common"
	"github.com/dmitrijs2005/quizzer/internal/logging"
	"github.com/dmitrijs2005/quizzer/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	RequestIDHeaderName = "X-Request-ID"

	studySetsPath       = "study-sets"
	defaultRegisterPath = "auth/register"
	defaultTimeout      = 10 * time.Second
	maxErrorBody        = 256
)

type HTTPClient struct {
	baseURL      *url.URL
	registerPath string
	timeout      time.Duration
	http         *http.Client
	logger       logging.Logger
	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. A cookie jar is
// attached if the given client has none.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.timeout = d }
}

func WithRegisterPath(p string) Option {
	return func(h *HTTPClient) { h.registerPath = p }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL,
// e.g. "http://127.0.0.1:8081/quizzer/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:      u,
		registerPath: defaultRegisterPath,
		timeout:      defaultTimeout,
		logger:       logging.Nop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// ListStudySets issues GET /study-sets. Every element must carry an id.
func (c *HTTPClient) ListStudySets(ctx context.Context) ([]models.StudySet, error) {
	var sets []models.StudySet
	if err := c.do(ctx, http.MethodGet, studySetsPath, nil, &sets, http.StatusOK); err != nil {
		return nil, err
	}
	if sets == nil {
		return nil, fmt.Errorf("%s %s: %w: expected a JSON array", http.MethodGet, studySetsPath, ErrDecode)
	}
	for i, s := range sets {
		if err := validation.Struct(s); err != nil {
			return nil, fmt.Errorf("%s %s: %w: element %d: %w", http.MethodGet, studySetsPath, ErrDecode, i, err)
		}
	}
	return sets, nil
}

// CreateStudySet issues POST /study-sets with {"title": title} and returns
// the created set.
func (c *HTTPClient) CreateStudySet(ctx context.Context, title string) (*models.StudySet, error) {
	req := models.CreateStudySetRequest{Title: title}

	var created *models.StudySet
	if err := c.do(ctx, http.MethodPost, studySetsPath, req, &created, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%s %s: %w: empty body", http.MethodPost, studySetsPath, ErrDecode)
	}
	if err := validation.Struct(created); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", http.MethodPost, studySetsPath, ErrDecode, err)
	}
	return created, nil
}

// Register posts the credentials to the registration endpoint. Any 2xx is
// success; the response body is ignored.
func (c *HTTPClient) Register(ctx context.Context, email, password string) error {
	req := models.RegisterRequest{Email: email, Password: password}
	return c.do(ctx, http.MethodPost, c.registerPath, req, nil,
		http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, okStatus ...int) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	reqID := c.newRequestID()
	ctx = logging.ContextWith(ctx, "request_id", reqID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, reqID)

	log := c.logger.With("method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(started))

	if !statusIn(resp.StatusCode, okStatus) {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       common.Truncate(string(bytes.TrimSpace(b)), maxErrorBody),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrDecode, err)
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: %w: trailing data after JSON value", method, path, ErrDecode)
	}
	return nil
}

func statusIn(code int, codes []int) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
