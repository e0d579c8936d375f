package swire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jpfluger/shiftsolve/serr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solve", r.URL.Path)
		var req SolverRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Variables, 1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SolverResponse{
			Status: StatusOptimal,
			Values: map[string]int{"x": 1},
		})
	}))
	defer srv.Close()

	client, err := NewSolverClient(srv.URL, 0)
	require.NoError(t, err)

	resp, err := client.Solve(context.Background(), &SolverRequest{Variables: []Variable{BoolVar("x")}})
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, resp.Status)
	assert.True(t, resp.Status.IsSolved())
	assert.Equal(t, 1, resp.Values["x"])
}

func TestSolveInfeasibleIsInBandNotTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SolverResponse{Status: StatusInfeasible})
	}))
	defer srv.Close()

	client, err := NewSolverClient(srv.URL, 0)
	require.NoError(t, err)

	resp, err := client.Solve(context.Background(), &SolverRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, resp.Status)
	assert.False(t, resp.Status.IsSolved())
}

func TestSolveTransportErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client, err := NewSolverClient(srv.URL, 0)
	require.NoError(t, err)

	_, err = client.Solve(context.Background(), &SolverRequest{})
	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindTransport))
}

func TestSolveTransportErrorOnUnreachableHost(t *testing.T) {
	client, err := NewSolverClient("http://127.0.0.1:1", 1)
	require.NoError(t, err)

	_, err = client.Solve(context.Background(), &SolverRequest{})
	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindTransport))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	client, err := NewSolverClient(srv.URL, 0)
	require.NoError(t, err)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestSolveRespectsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client, err := NewSolverClient(srv.URL, 30)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Solve(ctx, &SolverRequest{})
	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindTransport))
}

func TestNewSolverClientRejectsEmptyBaseURL(t *testing.T) {
	_, err := NewSolverClient("  ", 0)
	require.Error(t, err)
	assert.True(t, serr.IsKind(err, serr.KindConfig))
}
