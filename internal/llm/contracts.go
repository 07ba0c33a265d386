package llm

import "context"

// GenerateRequest is one structured-output call to a generative model.
type GenerateRequest struct {
	Prompt      string
	Schema      map[string]any // JSON Schema the output must satisfy
	Temperature float32
}

// Provider is a generative-model backend able to return JSON text.
// GenerateJSON returns the model's raw output; it does not validate it.
type Provider interface {
	Name() string
	Model() string
	GenerateJSON(ctx context.Context, req GenerateRequest) ([]byte, error)
}
