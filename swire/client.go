package swire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jpfluger/shiftsolve/serr"
)

const defaultConnectionTimeoutSeconds = 10

// SolverClient posts compiled models to an external solver service and
// parses its reply. It never interprets constraint semantics; it only
// moves the wire envelope over HTTP.
type SolverClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSolverClient builds a client against baseURL (e.g. "http://localhost:8080").
// timeoutSeconds <= 0 uses defaultConnectionTimeoutSeconds.
func NewSolverClient(baseURL string, timeoutSeconds int) (*SolverClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, serr.NewKind(serr.KindConfig, "solver base url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, serr.NewKind(serr.KindConfig, "invalid solver base url").WithCause(err)
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultConnectionTimeoutSeconds
	}
	return &SolverClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}, nil
}

func (c *SolverClient) joinURL(p string) string {
	return c.baseURL + "/" + strings.TrimLeft(p, "/")
}

// Solve POSTs req to {baseURL}/solve and decodes the SolverResponse. The
// call is the sole asynchronous boundary in a compile: ctx cancellation or
// deadline aborts the in-flight request immediately.
//
// A transport failure (the request never reaches the solver, or the solver
// returns a non-2xx status) is reported as a KindTransport error. An
// INFEASIBLE or ERROR status is NOT a transport error — it is returned
// in-band in the SolverResponse for the caller to interpret.
func (c *SolverClient) Solve(ctx context.Context, req *SolverRequest) (*SolverResponse, error) {
	if req == nil {
		return nil, serr.NewKind(serr.KindSolver, "solver request is nil")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, serr.NewKind(serr.KindSolver, "failed to marshal solver request").WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.joinURL("/solve"), bytes.NewReader(body))
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "failed to build solve request").WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "solve request failed").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "failed to read solve response").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serr.NewKind(serr.KindTransport, fmt.Sprintf("solver returned status %d", resp.StatusCode)).
			WithField(strings.TrimSpace(string(respBody)))
	}

	var out SolverResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, serr.NewKind(serr.KindSolver, "failed to decode solver response").WithCause(err)
	}
	return &out, nil
}

// Health GETs {baseURL}/health, aborting if ctx is cancelled or its deadline
// passes before the solver responds.
func (c *SolverClient) Health(ctx context.Context) (*HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.joinURL("/health"), nil)
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "failed to build health request").WithCause(err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "health request failed").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serr.NewKind(serr.KindTransport, "failed to read health response").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serr.NewKind(serr.KindTransport, fmt.Sprintf("solver health check returned status %d", resp.StatusCode))
	}

	var out HealthResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, serr.NewKind(serr.KindSolver, "failed to decode health response").WithCause(err)
	}
	return &out, nil
}
