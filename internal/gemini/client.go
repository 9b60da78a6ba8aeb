package gemini

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
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/utils"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1"
	defaultModel   = "gemini-2.0-flash"

	contentType = "application/json"

	// errPrefix marks sentinel replies. Failures are returned as normal
	// strings so the chat pane can render them like any other message;
	// callers distinguish them with IsErrorReply.
	errPrefix = "Error"

	maxPreviewLen = 200
)

// Client talks to the Gemini generateContent REST endpoint. One POST per
// prompt, no retries; the API key travels as a query-string parameter.
type Client struct {
	// HTTPClient may be replaced for tests or custom transports.
	HTTPClient *http.Client
	// BaseURL may be pointed at a test server.
	BaseURL string

	apiKey string
	model  string
	logger *zap.Logger
}

// NewClient creates a client for the given API key and model. An empty
// model falls back to the default.
func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: http.DefaultClient,
		BaseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate posts the prompt and returns the first text part of the first
// candidate. A non-2xx status comes back as "Error <status>: <body>";
// transport and parse failures come back as "Error: <message>".
func (c *Client) Generate(ctx context.Context, prompt string) string {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return fmt.Sprintf("%s: %s", errPrefix, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.BaseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("%s: %s", errPrefix, err)
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, maxPreviewLen)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Sprintf("%s: %s", errPrefix, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("%s: %s", errPrefix, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("generate content bad status",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(raw), maxPreviewLen)),
		)
		return fmt.Sprintf("%s %d: %s", errPrefix, resp.StatusCode, raw)
	}

	text, err := firstCandidateText(raw)
	if err != nil {
		c.logger.Debug("generate content unexpected shape", zap.Error(err))
		return fmt.Sprintf("%s: %s", errPrefix, err)
	}

	c.logger.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, maxPreviewLen)),
	)

	return text
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

func firstCandidateText(raw []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse response body: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}

	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", errors.New("first candidate has no content parts")
	}

	return parts[0].Text, nil
}

// IsErrorReply reports whether the reply is one of the sentinel strings
// produced by Generate.
func IsErrorReply(s string) bool {
	return strings.HasPrefix(s, errPrefix)
}
