package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/regatta-backend/internal/config"
)

func testConfig(provider, baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:    provider,
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		MaxTokens:   100,
		Temperature: 0.1,
	}
}

func TestNew_Disabled(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"", config.ProviderNone} {
		c, err := New(context.Background(), config.LLMConfig{Provider: p})
		assert.ErrorIs(t, err, ErrDisabled)
		assert.Nil(t, c)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.LLMConfig{Provider: "mystery"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestNew_SelectsBackend(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), testConfig(config.ProviderOpenAI, "http://localhost"))
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	c, err = New(context.Background(), testConfig(config.ProviderAnthropic, ""))
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, c)
}

func TestOpenAI_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultOpenAIModel, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "classify", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "who won", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":" {\"queryType\":\"top_clubs\"} "}}]}`)
	}))
	defer srv.Close()

	out, err := NewOpenAI(testConfig(config.ProviderOpenAI, srv.URL+"/")).Complete(context.Background(), "classify", "who won")
	require.NoError(t, err)
	assert.Equal(t, `{"queryType":"top_clubs"}`, out)
}

func TestOpenAI_Complete_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key"}}`)
	}))
	defer srv.Close()

	_, err := NewOpenAI(testConfig(config.ProviderOpenAI, srv.URL)).Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
	assert.Contains(t, err.Error(), "401")
}

func TestOpenAI_Complete_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := NewOpenAI(testConfig(config.ProviderOpenAI, srv.URL)).Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAI_Complete_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOpenAI(testConfig(config.ProviderOpenAI, url)).Complete(context.Background(), "s", "u")
	require.Error(t, err)
}

func TestAnthropic_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"), "path %s", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"classify"`)
		assert.Contains(t, string(body), `"who won"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"{\"queryType\":\"database_status\"}"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":5}
		}`)
	}))
	defer srv.Close()

	out, err := NewAnthropic(testConfig(config.ProviderAnthropic, srv.URL)).Complete(context.Background(), "classify", "who won")
	require.NoError(t, err)
	assert.Equal(t, `{"queryType":"database_status"}`, out)
}

func TestAnthropic_Complete_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
	}))
	defer srv.Close()

	_, err := NewAnthropic(testConfig(config.ProviderAnthropic, srv.URL)).Complete(context.Background(), "s", "u")
	require.Error(t, err)
}

func TestGemini_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, DefaultGeminiModel)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "who won")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"queryType\":"},{"text":"\"top_clubs\"}"}]}}]}`)
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), testConfig(config.ProviderGemini, srv.URL))
	require.NoError(t, err)

	out, err := g.Complete(context.Background(), "classify", "who won")
	require.NoError(t, err)
	assert.Equal(t, `{"queryType":"top_clubs"}`, out)
}

func TestGemini_Complete_NoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	g, err := NewGemini(context.Background(), testConfig(config.ProviderGemini, srv.URL))
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
