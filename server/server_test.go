package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	synapseflow "github.com/hupe1980/synapseflow"
	"github.com/hupe1980/synapseflow/agent"
	"github.com/hupe1980/synapseflow/core"
	"github.com/hupe1980/synapseflow/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	a := agent.New("worker")
	a.RegisterCapability(core.NewCapability("echo", "echo tool", nil,
		func(_ context.Context, input string) (string, error) {
			return "ECHO:" + input, nil
		}))

	swarm := synapseflow.New()
	swarm.Register(a)

	mock := model.NewMockModel("test")
	mock.AddResponse("stream me", "fragmented output")

	return New(swarm, func(o *Options) {
		o.JWTSecret = []byte("test-secret")
		o.Model = mock
	})
}

func issueToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()

	body := bytes.NewBufferString(`{"username":"demo","password":"demo"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthz(t *testing.T) {
	engine := newTestServer(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	engine := newTestServer(t)

	body := bytes.NewBufferString(`{"username":"demo","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunRequiresToken(t *testing.T) {
	engine := newTestServer(t)

	body := bytes.NewBufferString(`{"agent":"worker","query":"echo hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/run", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunRejectsForgedToken(t *testing.T) {
	engine := newTestServer(t)

	body := bytes.NewBufferString(`{"agent":"worker","query":"echo hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/run", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not.a.token")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunDispatchesToSwarm(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	body := bytes.NewBufferString(`{"agent":"worker","user_id":"u1","query":"echo hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/run", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result synapseflow.Outcome `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Result.Found)
	require.NotEmpty(t, resp.Result.Steps)
	assert.Equal(t, "ECHO:echo hello", resp.Result.Steps[0].Results[0].Output)
}

func TestRunUnknownAgentIs404(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	body := bytes.NewBufferString(`{"agent":"ghost","query":"anything"}`)
	req := httptest.NewRequest(http.MethodPost, "/run", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAgentsListing(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Agents []string `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"worker"}, resp.Agents)
}

func TestMemoryLog(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	// Seed a memory record through a run first.
	body := bytes.NewBufferString(`{"agent":"worker","user_id":"u1","query":"echo hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/run", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/memory/u1?agent=worker", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []core.Record `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "echo hello", resp.Records[0].Text)
}

func TestStreamRelaysModelFragments(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	// Streaming handlers need a real connection; the recorder does not
	// implement CloseNotify.
	srv := httptest.NewServer(engine)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/stream", bytes.NewBufferString(`{"query":"stream me"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fragmented output", string(raw))
}

func TestStreamWithoutModelIs503(t *testing.T) {
	engine := New(synapseflow.New(), func(o *Options) {
		o.JWTSecret = []byte("test-secret")
	})
	token := issueToken(t, engine)

	body := bytes.NewBufferString(`{"query":"anything"}`)
	req := httptest.NewRequest(http.MethodPost, "/stream", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSSEStreamAcceptsTokenQueryParam(t *testing.T) {
	engine := newTestServer(t)
	token := issueToken(t, engine)

	srv := httptest.NewServer(engine)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sse_stream?q=stream+me&token=" + token)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "fragmented")
}
