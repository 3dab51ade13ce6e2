package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(HTTPOptions{BaseURL: srv.URL + "/api/", Tokens: StaticToken(token), Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPOptions{BaseURL: "localhost:8080"})
	require.Error(t, err)

	_, err = NewHTTPClient(HTTPOptions{BaseURL: "://"})
	require.Error(t, err)
}

func TestListElections_SendsBearerAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/elections", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id": 1, "name": "City"}, "junk", {"id": "2"}]`)
	}, "tkn")

	got, err := c.ListElections(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, json.Number("1"), got[0]["id"])
	assert.Equal(t, "City", got[0]["name"])
}

func TestList_AcceptsWrappedAndEmptyBodies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/voters":
			_, _ = io.WriteString(w, `{"data": [{"id": "v1"}]}`)
		case "/api/candidates":
			_, _ = io.WriteString(w, `null`)
		default:
			_, _ = io.WriteString(w, `{"unexpected": true}`)
		}
	}, "")

	got, err := c.ListVoters(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0]["id"])

	got, err = c.ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.ListTokenBatches(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}, "")

	_, err := c.ListResults(context.Background())
	require.NoError(t, err)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code int
		body string
		want error
	}{
		{http.StatusUnauthorized, ``, ErrUnauthorized},
		{http.StatusForbidden, ``, ErrUnauthorized},
		{http.StatusNotFound, `{"error":"no such candidate"}`, ErrNotFound},
		{http.StatusInternalServerError, `boom`, ErrUnavailable},
		{http.StatusBadGateway, ``, ErrUnavailable},
		{http.StatusUnprocessableEntity, `{"error":"name is required"}`, ErrRejected},
		{http.StatusConflict, ``, ErrRejected},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			}, "x")

			err := c.DeleteCandidate(context.Background(), "c1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, "/api/candidates/c1", se.Path)
		})
	}
}

func TestStatusError_MessageFromEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"count must be positive"}`)
	}, "")

	_, err := c.GenerateTokens(context.Background(), []string{"e1"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must be positive")
}

func TestDialErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewHTTPClient(HTTPOptions{BaseURL: base})
	require.NoError(t, err)

	_, err = c.ListElections(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewHTTPClient(HTTPOptions{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.ListVoters(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTokenSourceErrorIsUnauthorized(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called.Store(true) }))
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(HTTPOptions{
		BaseURL: srv.URL,
		Tokens: TokenSourceFunc(func(context.Context) (string, error) {
			return "", errors.New("no session")
		}),
	})
	require.NoError(t, err)

	_, err = c.ListElections(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called.Load())
}

func TestCreateElection_PostsDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/elections", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got models.ElectionDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "City", got.Name)
		assert.Equal(t, models.StatusDraft, got.Status)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id": 7, "name": "City", "status": "Draft"}`)
	}, "t")

	rec, err := c.CreateElection(context.Background(), models.ElectionDraft{Name: "City", Status: models.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, json.Number("7"), rec["id"])
}

func TestUpdateElection_EscapesIDAndSendsPartialBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/elections/a%2Fb", r.URL.EscapedPath())

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"status": "Active"}, body)
		w.WriteHeader(http.StatusNoContent)
	}, "t")

	rec, err := c.UpdateElection(context.Background(), "a/b", models.Record{"status": "Active"})
	require.NoError(t, err)
	assert.Empty(t, rec)
}

func TestCreateCandidateAndVoter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/candidates":
			_, _ = io.WriteString(w, `{"id": "c1"}`)
		case "/api/voters":
			_, _ = io.WriteString(w, `{"id": "v1"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "t")

	rec, err := c.CreateCandidate(context.Background(), models.CandidateDraft{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "c1", rec["id"])

	rec, err = c.CreateVoter(context.Background(), models.VoterDraft{Name: "V"})
	require.NoError(t, err)
	assert.Equal(t, "v1", rec["id"])
}

func TestTokenEndpoints(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/api/token-batches/generate" {
			var in struct {
				ElectionIDs []string `json:"electionIds"`
				Count       int      `json:"count"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, []string{"e1", "e2"}, in.ElectionIDs)
			assert.Equal(t, 5, in.Count)
			_, _ = io.WriteString(w, `{"batchId": "b1"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, "t")

	ctx := context.Background()
	rec, err := c.GenerateTokens(ctx, []string{"e1", "e2"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "b1", rec["batchId"])
	require.NoError(t, c.DeleteTokenBatch(ctx, "b1"))
	require.NoError(t, c.DeleteToken(ctx, "t1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"POST /api/token-batches/generate",
		"DELETE /api/token-batches/b1",
		"DELETE /api/tokens/t1",
	}, seen)
}

func TestCandidateImageUploadURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/candidates/image-upload-url", r.URL.Path)
		_, _ = io.WriteString(w, `{"key":"k","uploadUrl":"https://s3/put","imageUrl":"https://s3/get"}`)
	}, "t")

	got, err := c.CandidateImageUploadURL(context.Background(), "image/png")
	require.NoError(t, err)
	assert.Equal(t, UploadTarget{Key: "k", UploadURL: "https://s3/put", ImageURL: "https://s3/get"}, got)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"token":"jwt"}`)
	}, "")

	tok, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", tok)

	_, err = c.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPing_FallsBackToHTTPHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			_, _ = io.WriteString(w, `{"status":"ok"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}, "")

	require.NoError(t, c.Ping(context.Background()))
}

type fakeHealth struct {
	resp *healthpb.HealthCheckResponse
	err  error
}

func (f *fakeHealth) Check(context.Context, *healthpb.HealthCheckRequest, ...grpc.CallOption) (*healthpb.HealthCheckResponse, error) {
	return f.resp, f.err
}

func TestPing_GRPCHealth(t *testing.T) {
	c, err := NewHTTPClient(HTTPOptions{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	c.health = &fakeHealth{resp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}}
	require.NoError(t, c.Ping(context.Background()))

	c.health = &fakeHealth{resp: &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c.health = &fakeHealth{err: status.Error(codes.Unavailable, "down")}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c.health = &fakeHealth{err: status.Error(codes.Unauthenticated, "no")}
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnauthorized)

	c.health = &fakeHealth{err: status.Error(codes.Internal, "oops")}
	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc error")
}

func TestNewHTTPClient_WithHealthAddr(t *testing.T) {
	c, err := NewHTTPClient(HTTPOptions{BaseURL: "http://localhost", HealthAddr: "localhost:50051"})
	require.NoError(t, err)
	require.NotNil(t, c.health)
	require.NoError(t, c.Close())
}
