package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/pkg/config"
)

func makeLogs(n int) []model.LogEntry {
	logs := make([]model.LogEntry, n)
	for i := range logs {
		logs[i] = model.LogEntry{
			ID:        fmt.Sprintf("log-%d", i),
			Action:    model.ActionLogin,
			Details:   fmt.Sprintf("entry %d", i),
			Timestamp: "2025-01-01T00:00:00.000Z",
		}
	}
	return logs
}

func TestBuildPromptKeepsNewestTwenty(t *testing.T) {
	prompt := BuildPrompt(makeLogs(25), "Hawkforce AI")

	assert.Contains(t, prompt, "AI assistant for Hawkforce AI.")
	assert.Contains(t, prompt, "[2025-01-01T00:00:00.000Z] LOGIN: entry 0\n")
	assert.Contains(t, prompt, "LOGIN: entry 19\n")
	assert.NotContains(t, prompt, "entry 20")
}

func TestAnalyzeMissingKey(t *testing.T) {
	c := NewClient(config.AIConfig{}, "Hawkforce AI")
	assert.Equal(t, MsgMissingKey, c.Analyze(context.Background(), makeLogs(1)))
}

func newFakeModel(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AIConfig{
		APIKey:     "test-key",
		Model:      "gemini-test",
		Endpoint:   srv.URL + "/",
		APIVersion: "v1beta",
		Timeout:    time.Second,
	}, "Hawkforce AI")
}

func TestAnalyzeReturnsModelText(t *testing.T) {
	c := newFakeModel(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "LOGIN: entry 0")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"All quiet. "},{"text":"No anomalies."}]}}]}`)
	})

	assert.Equal(t, "All quiet. No anomalies.", c.Analyze(context.Background(), makeLogs(3)))
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	c := newFakeModel(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})
	assert.Equal(t, MsgNoAnalysis, c.Analyze(context.Background(), makeLogs(1)))
}

func TestAnalyzeFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>")
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(1500 * time.Millisecond)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			c := newFakeModel(t, h)
			got := c.Analyze(context.Background(), makeLogs(1))
			assert.True(t, strings.HasPrefix(got, "Failed to analyze logs"), got)
		})
	}
}
