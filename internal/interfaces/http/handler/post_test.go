package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postapp "github.com/LaytonGott/postup-standalone/internal/application/post"
	"github.com/LaytonGott/postup-standalone/internal/config"
	"github.com/LaytonGott/postup-standalone/internal/workflow/chain"
	workflowport "github.com/LaytonGott/postup-standalone/internal/workflow/port"
	apperrors "github.com/LaytonGott/postup-standalone/pkg/errors"
)

const fourKeyCompletion = `{
  "variations": [
    {"hookLine": "Your launch post is why nobody cared.", "content": "Your launch post is why nobody cared.\n\nShip the story, not the feature list."},
    {"hookLine": "Launch day is a vanity metric.", "content": "Launch day is a vanity metric.\n\nDay 30 is the real launch."}
  ],
  "hookAlternatives": [
    {"text": "Why did your launch flop?", "style": "question"},
    {"text": "93% of launches get zero comments.", "style": "statistic"},
    {"text": "At 2am the Stripe dashboard still said $0.", "style": "story"},
    {"text": "Launching is the easy part.", "style": "bold_statement"}
  ],
  "improvementTips": ["Add a revenue number", "Cut the second paragraph", "Name the product"],
  "confidenceScore": 78
}`

type stubCompleter struct {
	text       string
	err        error
	preflight  error
	preflights int
	calls      int
}

func (s *stubCompleter) Complete(context.Context, workflowport.CompletionRequest) (*workflowport.Completion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &workflowport.Completion{Text: s.text}, nil
}

func (s *stubCompleter) Preflight(context.Context, string) error {
	s.preflights++
	return s.preflight
}

func newTestEngine(stub *stubCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{LLM: config.LLMConfig{DefaultProvider: "anthropic"}}
	svc := postapp.NewService(cfg, stub, chain.NewPostChain(stub, nil))
	h := NewPostHandler(svc)

	engine := gin.New()
	engine.POST("/api/generate", h.Generate)
	engine.GET("/api/options", h.Options)
	health := NewHealthHandler("v-test", svc)
	engine.GET("/ready", health.Ready)
	engine.GET("/live", health.Live)
	engine.GET("/health", health.Health)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestGenerate_Success(t *testing.T) {
	stub := &stubCompleter{text: fourKeyCompletion}
	engine := newTestEngine(stub)

	w, out := postJSON(t, engine, `{"content":"I launched a product","tone":"casual","inputType":"rough_idea"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var expected any
	require.NoError(t, json.Unmarshal([]byte(fourKeyCompletion), &expected))
	assert.Equal(t, expected, out["result"])

	stats, ok := out["variationStats"].([]any)
	require.True(t, ok)
	require.Len(t, stats, 2)
	first := stats[0].(map[string]any)
	assert.Equal(t, "variation-1", first["id"])
	assert.Equal(t, false, first["overLimit"])
	assert.Equal(t, 1, stub.calls)
}

func TestGenerate_ChattyCompletion(t *testing.T) {
	stub := &stubCompleter{text: "Sure! Here's your post:\n" + fourKeyCompletion + "\nGood luck!"}
	w, out := postJSON(t, newTestEngine(stub), `{"content":"I launched a product"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var expected any
	require.NoError(t, json.Unmarshal([]byte(fourKeyCompletion), &expected))
	assert.Equal(t, expected, out["result"])
}

func TestGenerate_Refinement(t *testing.T) {
	stub := &stubCompleter{text: "\nLaunching is the easy part.\n"}
	w, out := postJSON(t, newTestEngine(stub), `{"action":"shorter","currentPost":"A long post about launching."}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Launching is the easy part.", out["result"])
	assert.NotContains(t, out, "variationStats")
}

func TestGenerate_ContentRequired(t *testing.T) {
	for _, body := range []string{`{}`, `{"content":"   "}`, `{"tone":"casual","inputType":"article"}`, ``} {
		stub := &stubCompleter{text: fourKeyCompletion}
		w, out := postJSON(t, newTestEngine(stub), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, map[string]any{"error": "Content is required"}, out, body)
		assert.Zero(t, stub.calls)
	}
}

func TestGenerate_BadRequests(t *testing.T) {
	for _, body := range []string{
		`{"content":"x","tone":"angry"}`,
		`{"content":"x","action":"shorter"}`,
		`{"currentPost":"x","action":"longer"}`,
		`{"content": 42}`,
		`{not json`,
	} {
		stub := &stubCompleter{text: fourKeyCompletion}
		w, out := postJSON(t, newTestEngine(stub), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotEmpty(t, out["error"], body)
		assert.Zero(t, stub.calls)
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	for _, body := range []string{`{"content":"I launched a product"}`, `{}`, `{not json`} {
		stub := &stubCompleter{preflight: apperrors.ErrConfiguration}
		w, out := postJSON(t, newTestEngine(stub), body)

		assert.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.Equal(t, map[string]any{"error": "Anthropic API key not configured"}, out, body)
		assert.Zero(t, stub.calls)
		assert.Equal(t, 1, stub.preflights, body)
	}
}

func TestGenerate_CredentialCheckedOncePerRequest(t *testing.T) {
	stub := &stubCompleter{text: fourKeyCompletion}
	w, _ := postJSON(t, newTestEngine(stub), `{"content":"I launched a product"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.preflights)
	assert.Equal(t, 1, stub.calls)
}

func TestGenerate_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		stub       *stubCompleter
		wantStatus int
		wantError  string
	}{
		{name: "provider status", stub: &stubCompleter{err: apperrors.Upstream(429, "Rate limit exceeded", nil)}, wantStatus: 429, wantError: "Rate limit exceeded"},
		{name: "no status", stub: &stubCompleter{err: apperrors.Upstream(0, "", nil)}, wantStatus: 500, wantError: "API request failed"},
		{name: "empty", stub: &stubCompleter{text: ""}, wantStatus: 500, wantError: "Empty response from AI"},
		{name: "malformed", stub: &stubCompleter{text: "I'd rather not."}, wantStatus: 500, wantError: "Failed to parse response"},
		{name: "bad shape", stub: &stubCompleter{text: `{"variations":[]}`}, wantStatus: 500, wantError: "Failed to parse response"},
		{name: "unexpected", stub: &stubCompleter{err: assert.AnError}, wantStatus: 500, wantError: "Failed to generate content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := postJSON(t, newTestEngine(tt.stub), `{"content":"idea"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, map[string]any{"error": tt.wantError}, out)
		})
	}
}

func TestOptions(t *testing.T) {
	w := httptest.NewRecorder()
	newTestEngine(&stubCompleter{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/options", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Tones []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"tones"`
		Niches        []map[string]string `json:"niches"`
		QuickActions  []map[string]string `json:"quickActions"`
		CharLimit     int                 `json:"charLimit"`
		PreviewCutoff int                 `json:"previewCutoff"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	require.Len(t, out.Tones, 4)
	assert.Equal(t, "professional", out.Tones[0].Value)
	assert.Equal(t, "Professional", out.Tones[0].Label)
	require.Len(t, out.Niches, 6)
	assert.Equal(t, "general", out.Niches[0]["value"])
	assert.Len(t, out.QuickActions, 3)
	assert.Equal(t, 3000, out.CharLimit)
	assert.Equal(t, 210, out.PreviewCutoff)
}

func TestHealthEndpoints(t *testing.T) {
	engine := newTestEngine(&stubCompleter{})
	for _, path := range []string{"/health", "/live", "/ready"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	newTestEngine(&stubCompleter{preflight: apperrors.ErrConfiguration}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"not_ready"`)
}

func TestReady_HidesErrorDetail(t *testing.T) {
	stub := &stubCompleter{preflight: apperrors.ErrConfiguration.WithDetail("environment variable ANTHROPIC_API_KEY is empty")}
	w := httptest.NewRecorder()
	newTestEngine(stub).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Anthropic API key not configured")
	assert.NotContains(t, body, "ANTHROPIC_API_KEY")
	assert.NotContains(t, body, "1009")
}
