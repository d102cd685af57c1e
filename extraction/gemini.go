package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/docufill/docufill/schema"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// APIError reports a non-2xx response from the Gemini API after retries
// were exhausted.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: HTTP %d: %s", e.Status, e.Body)
}

// GeminiClient extracts structured fields from recognized document text
// via the Gemini generateContent API. Transient failures are retried with
// exponential backoff.
type GeminiClient struct {
	apiKey string
	model  string
	http   *retryablehttp.Client
}

// NewGeminiClient builds a client. model may be empty to use DefaultModel,
// retries caps the retry attempts (0 means 3).
func NewGeminiClient(apiKey, model string, retries int) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	if retries <= 0 {
		retries = 3
	}
	c := retryablehttp.NewClient()
	c.RetryMax = retries
	c.RetryWaitMin = time.Second
	c.RetryWaitMax = 8 * time.Second
	c.Logger = nil
	return &GeminiClient{apiKey: apiKey, model: model, http: c}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Extract sends the recognized text and the canonical schema to the model
// and returns its raw field map, keys unresolved. Pass the result through
// Normalize before use.
func (c *GeminiClient) Extract(ctx context.Context, text string, s *schema.Schema) (map[string]FieldValue, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: API key missing")
	}

	body, err := json.Marshal(c.buildRequest(text, s))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, c.model) + "?key=" + c.apiKey
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(respBody), 500)}
	}

	fields, err := parseResponse(respBody)
	if err != nil {
		return nil, err
	}
	slog.Debug("Gemini extraction complete", "model", c.model, "fields", len(fields))
	return fields, nil
}

func (c *GeminiClient) buildRequest(text string, s *schema.Schema) geminiRequest {
	rules := "You are an expert document parser for scanned forms. " +
		"Always return JSON only, no explanations or text outside JSON. " +
		"Each key must exist in the schema. " +
		"Each field must have 'value', 'confidence' (0-1), and 'rationale' (max 15 words). " +
		"Missing or uncertain fields get an empty string and confidence=0. " +
		"Be robust to OCR noise, abbreviations, and label variations."

	return geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: rules}}},
			{Role: "user", Parts: []geminiPart{{Text: "Schema fields:\n" + strings.Join(s.Names(), "\n")}}},
			{Role: "user", Parts: []geminiPart{{Text: "OCR TEXT:\n" + text}}},
		},
	}
}

func parseResponse(body []byte) (map[string]FieldValue, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode envelope: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: empty response")
	}

	text := stripFences(resp.Candidates[0].Content.Parts[0].Text)
	var fields map[string]FieldValue
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("gemini: invalid JSON from model: %w", err)
	}
	return fields, nil
}

// stripFences removes a markdown code fence the model sometimes wraps its
// JSON in.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
