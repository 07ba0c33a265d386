package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/docfacts/internal/llm"
)

// GenerateJSON implements llm.Provider with a chat completion in JSON-object
// mode. JSON-object mode only yields objects, so the model is told to wrap
// the array as {"records": [...]} and the wrapper is removed here.
func (c *Client) GenerateJSON(ctx context.Context, req llm.GenerateRequest) ([]byte, error) {
	start := time.Now()

	temp := req.Temperature
	if temp == 0 {
		// the request field is omitempty; a tiny non-zero value keeps decoding greedy
		temp = math.SmallestNonzeroFloat32
	}

	resp, err := c.chat.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: temp,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: buildSystemPrompt(req.Schema)},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("openai api error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in openai response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug("openai.chat.ok",
		"model", c.cfg.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return unwrapRecords([]byte(content)), nil
}

func buildSystemPrompt(schema map[string]any) string {
	parts := []string{
		`Return ONLY a JSON object of the form {"records": [...]}.`,
		"The records array must match this JSON Schema:",
		mustJSON(schema),
	}
	return strings.Join(parts, "\n")
}

// unwrapRecords returns the "records" array of a wrapper object. Anything
// else is returned unchanged for the caller to validate.
func unwrapRecords(content []byte) []byte {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapper); err != nil {
		return content
	}
	if recs, ok := wrapper["records"]; ok {
		return recs
	}
	return content
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
