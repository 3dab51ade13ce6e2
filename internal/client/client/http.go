package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"google.golang.org/grpc"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxErrorBody          = 4 << 10
)

type HTTPOptions struct {
	// BaseURL is the backend root, e.g. http://localhost:8080/api.
	BaseURL string
	// HealthAddr is the backend's gRPC health endpoint. When empty Ping
	// falls back to GET /health.
	HealthAddr string
	Timeout    time.Duration
	Tokens     TokenSource
	HTTP       *http.Client
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration

	healthConn *grpc.ClientConn
	health     healthChecker
}

func NewHTTPClient(opts HTTPOptions) (*HTTPClient, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", opts.BaseURL)
	}

	c := &HTTPClient{
		baseURL: base,
		http:    opts.HTTP,
		tokens:  opts.Tokens,
		timeout: opts.Timeout,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.tokens == nil {
		c.tokens = StaticToken("")
	}
	if c.timeout <= 0 {
		c.timeout = defaultRequestTimeout
	}

	if opts.HealthAddr != "" {
		if err := c.initHealth(opts.HealthAddr); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	if c.healthConn != nil {
		return c.healthConn.Close()
	}
	return nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return c.baseURL + "/" + strings.Join(segs, "/")
}

// do sends one JSON request. out may be nil when the response body is not
// needed.
func (c *HTTPClient) do(ctx context.Context, method string, path []string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.endpoint(path...)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    req.URL.Path,
			Code:    resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode %s %s: %v", ErrUnavailable, method, req.URL.Path, err)
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error response. The
// backend answers {"error": "..."}; anything else is returned verbatim.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &envelope) == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(b))
}

// list fetches a collection. Both a bare JSON array and an object wrapping
// it under "data" or "items" are accepted.
func (c *HTTPClient) list(ctx context.Context, path ...string) ([]models.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList(raw)
}

func decodeList(raw json.RawMessage) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Record{}, nil
	}

	if trimmed[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := unmarshalNumbers(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: decode list: %v", ErrUnavailable, err)
		}
		for _, key := range []string{"data", "items"} {
			if inner, ok := wrapped[key]; ok {
				return decodeList(inner)
			}
		}
		return nil, fmt.Errorf("%w: decode list: unexpected object", ErrUnavailable)
	}

	var items []any
	if err := unmarshalNumbers(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: decode list: %v", ErrUnavailable, err)
	}
	out := make([]models.Record, 0, len(items))
	for _, it := range items {
		if r, ok := it.(map[string]any); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func unmarshalNumbers(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}

func (c *HTTPClient) record(ctx context.Context, method string, path []string, in any) (models.Record, error) {
	var out models.Record
	if err := c.do(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = models.Record{}
	}
	return out, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, []string{"auth", "login"}, in, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: empty token in login response", ErrUnauthorized)
	}
	return out.Token, nil
}

func (c *HTTPClient) ListElections(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, "elections")
}

func (c *HTTPClient) CreateElection(ctx context.Context, draft models.ElectionDraft) (models.Record, error) {
	return c.record(ctx, http.MethodPost, []string{"elections"}, draft)
}

// UpdateElection sends a partial update; only the given fields change.
func (c *HTTPClient) UpdateElection(ctx context.Context, id string, fields models.Record) (models.Record, error) {
	return c.record(ctx, http.MethodPut, []string{"elections", id}, fields)
}

func (c *HTTPClient) ListCandidates(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, "candidates")
}

func (c *HTTPClient) CreateCandidate(ctx context.Context, draft models.CandidateDraft) (models.Record, error) {
	return c.record(ctx, http.MethodPost, []string{"candidates"}, draft)
}

func (c *HTTPClient) DeleteCandidate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, []string{"candidates", id}, nil, nil)
}

func (c *HTTPClient) CandidateImageUploadURL(ctx context.Context, contentType string) (UploadTarget, error) {
	var out UploadTarget
	in := map[string]string{"contentType": contentType}
	if err := c.do(ctx, http.MethodPost, []string{"candidates", "image-upload-url"}, in, &out); err != nil {
		return UploadTarget{}, err
	}
	return out, nil
}

func (c *HTTPClient) ListVoters(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, "voters")
}

func (c *HTTPClient) CreateVoter(ctx context.Context, draft models.VoterDraft) (models.Record, error) {
	return c.record(ctx, http.MethodPost, []string{"voters"}, draft)
}

func (c *HTTPClient) ListTokenBatches(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, "token-batches")
}

func (c *HTTPClient) GenerateTokens(ctx context.Context, electionIDs []string, count int) (models.Record, error) {
	in := struct {
		ElectionIDs []string `json:"electionIds"`
		Count       int      `json:"count"`
	}{ElectionIDs: electionIDs, Count: count}
	return c.record(ctx, http.MethodPost, []string{"token-batches", "generate"}, in)
}

func (c *HTTPClient) DeleteTokenBatch(ctx context.Context, batchID string) error {
	return c.do(ctx, http.MethodDelete, []string{"token-batches", batchID}, nil, nil)
}

func (c *HTTPClient) DeleteToken(ctx context.Context, tokenID string) error {
	return c.do(ctx, http.MethodDelete, []string{"tokens", tokenID}, nil, nil)
}

func (c *HTTPClient) ListResults(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, "results")
}
