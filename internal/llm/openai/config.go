package openai

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// Config for the OpenAI client.
type Config struct {
	APIKey  string
	BaseURL string        // default https://api.openai.com/v1
	Model   string        // e.g., "gpt-4o-mini"
	Timeout time.Duration // 0 keeps net/http's default (no client timeout)
}

// chatClient is the part of *goopenai.Client we use; tests substitute it.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type Client struct {
	cfg  Config
	chat chatClient
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = slog.Default()
	}

	transportCfg := goopenai.DefaultConfig(cfg.APIKey)
	transportCfg.BaseURL = cfg.BaseURL
	transportCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		cfg:  cfg,
		chat: goopenai.NewClientWithConfig(transportCfg),
		log:  logger,
	}
}

func (c *Client) Name() string  { return "openai" }
func (c *Client) Model() string { return c.cfg.Model }
