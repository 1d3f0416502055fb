package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/neethishnk/hawkcards/internal/model"
	"github.com/neethishnk/hawkcards/pkg/config"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/prometheus"
)

// Fixed replies returned in place of an analysis.
const (
	MsgMissingKey = "API Key is missing. Cannot perform AI analysis."
	MsgNoAnalysis = "No analysis generated."
	MsgFailed     = "Failed to analyze logs via Gemini. Please try again later."
)

// MaxLogs is how many of the newest entries go into the prompt.
const MaxLogs = 20

const promptTemplate = `
You are a Chief Security Officer's AI assistant for %s.
Analyze the following system audit logs for any patterns, anomalies, or summary of activity.
Keep the response professional, concise, and focused on security and operational efficiency.

Logs:
%s
`

// Client asks a Gemini model to summarise the audit trail.
type Client struct {
	genai   *genai.Client
	initErr error
	model   string
	apiKey  string
	org     string
	timeout time.Duration
}

// NewClient creates a client from the AI settings. Without an API key no
// SDK client is built and Analyze answers MsgMissingKey.
func NewClient(cfg config.AIConfig, org string) *Client {
	c := &Client{
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		org:     org,
		timeout: cfg.Timeout,
	}
	if cfg.APIKey == "" {
		return c
	}
	c.genai, c.initErr = genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: cfg.APIVersion,
		},
	})
	return c
}

// BuildPrompt formats the newest MaxLogs entries (logs are newest first).
func BuildPrompt(logs []model.LogEntry, org string) string {
	if len(logs) > MaxLogs {
		logs = logs[:MaxLogs]
	}
	lines := make([]string, len(logs))
	for i, l := range logs {
		lines[i] = fmt.Sprintf("[%s] %s: %s", l.Timestamp, l.Action, l.Details)
	}
	return fmt.Sprintf(promptTemplate, org, strings.Join(lines, "\n"))
}

// Analyze never fails: errors are logged and replaced by MsgFailed.
func (c *Client) Analyze(ctx context.Context, logs []model.LogEntry) string {
	if c.apiKey == "" {
		prometheus.RecordAnalysis("missing_key")
		return MsgMissingKey
	}

	text, err := c.generate(ctx, BuildPrompt(logs, c.org))
	if err != nil {
		logger.Ctx(ctx).Error("Gemini analysis error", zap.Error(err))
		prometheus.RecordAnalysis("error")
		return MsgFailed
	}
	if strings.TrimSpace(text) == "" {
		prometheus.RecordAnalysis("empty")
		return MsgNoAnalysis
	}
	prometheus.RecordAnalysis("ok")
	return text
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.initErr != nil {
		return "", fmt.Errorf("failed to create genai client: %w", c.initErr)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
