package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joseph-ayodele/docfacts/internal/llm"
)

// APIError is an error payload returned by the Gemini API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error %d %s: %s", e.StatusCode, e.Status, e.Message)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      *float32       `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateJSON implements llm.Provider with generateContent in JSON mode,
// passing the schema as responseSchema.
func (c *Client) GenerateJSON(ctx context.Context, req llm.GenerateRequest) ([]byte, error) {
	start := time.Now()
	temp := req.Temperature
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   toGeminiSchema(req.Schema),
			Temperature:      &temp,
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.Model))
	poster := llm.JSONPoster{
		Client:  c.http,
		Headers: map[string]string{"x-goog-api-key": c.cfg.APIKey},
		Logger:  c.log,
	}

	raw, err := poster.Post(ctx, endpoint, body)
	if err != nil {
		var se *llm.StatusError
		if errors.As(err, &se) {
			return nil, parseAPIError(se.StatusCode, se.Body)
		}
		return nil, fmt.Errorf("gemini http error: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		if gr.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("gemini blocked the prompt: %s", gr.PromptFeedback.BlockReason)
		}
		return nil, errors.New("no candidates in gemini response")
	}

	cand := gr.Candidates[0]
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("empty gemini candidate (finish reason %q)", cand.FinishReason)
	}

	c.log.Debug("gemini.generate.ok",
		"model", c.cfg.Model,
		"finish_reason", cand.FinishReason,
		"bytes", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []byte(b.String()), nil
}

func parseAPIError(status int, raw []byte) error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error.Message != "" {
		return &APIError{StatusCode: status, Status: er.Error.Status, Message: er.Error.Message}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(raw))}
}

// toGeminiSchema rewrites a JSON Schema into Gemini's OpenAPI subset:
// upper-case type names and no additionalProperties.
func toGeminiSchema(s map[string]any) map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s))
	for k, v := range s {
		switch k {
		case "additionalProperties", "$schema":
			continue
		case "type":
			if t, ok := v.(string); ok {
				out[k] = strings.ToUpper(t)
				continue
			}
			out[k] = v
		case "items":
			if m, ok := v.(map[string]any); ok {
				out[k] = toGeminiSchema(m)
				continue
			}
			out[k] = v
		case "properties":
			props, ok := v.(map[string]any)
			if !ok {
				out[k] = v
				continue
			}
			conv := make(map[string]any, len(props))
			for name, p := range props {
				if pm, ok := p.(map[string]any); ok {
					conv[name] = toGeminiSchema(pm)
				} else {
					conv[name] = p
				}
			}
			out[k] = conv
		default:
			out[k] = v
		}
	}
	return out
}
