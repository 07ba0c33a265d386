package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Reader names accepted in PDF_READER.
const (
	ReaderNative    = "native"
	ReaderPdftotext = "pdftotext"
)

// Config holds all application configuration
type Config struct {
	LLM    LLMConfig
	Reader ReaderConfig
	Server ServerConfig
	Log    LogConfig
}

// LLMConfig holds model-provider configuration
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration // 0 leaves the HTTP client's default in place
	Lenient     bool
}

// ReaderConfig selects and configures the PDF text reader
type ReaderConfig struct {
	Kind         string
	PdftotextBin string
}

// ServerConfig holds form front-end configuration
type ServerConfig struct {
	Addr        string
	MaxUploadMB int64
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// LoadOptions tells LoadConfig where to look besides the process environment.
type LoadOptions struct {
	ConfigFile string   // optional YAML file; DOCFACTS_CONFIG is used when empty
	EnvFiles   []string // dotenv files; missing files are skipped
}

// LoadConfig loads configuration from dotenv files, an optional YAML file and
// the process environment. Environment values win over file values, which win
// over defaults.
func LoadConfig(opts LoadOptions) (*Config, error) {
	if err := LoadEnvFiles(opts.EnvFiles...); err != nil {
		return nil, ConfigError("load env files", err)
	}

	path := opts.ConfigFile
	if path == "" {
		path = os.Getenv("DOCFACTS_CONFIG")
	}
	var fc FileConfig
	if path != "" {
		var err error
		fc, err = LoadConfigFile(path)
		if err != nil {
			return nil, ConfigError("load config file "+path, err)
		}
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", or(fc.LLM.Provider, ProviderGemini)))
	cfg := &Config{
		LLM: LLMConfig{
			Provider:    provider,
			Model:       getEnv("LLM_MODEL", or(fc.LLM.Model, defaultModel(provider))),
			APIKey:      credentialFromEnv(provider, fc.LLM.APIKey),
			BaseURL:     getEnv("LLM_BASE_URL", fc.LLM.BaseURL),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", fc.LLM.Temperature),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", fc.LLM.Timeout),
			Lenient:     getEnvAsBool("LLM_LENIENT", fc.LLM.Lenient == nil || *fc.LLM.Lenient),
		},
		Reader: ReaderConfig{
			Kind:         strings.ToLower(getEnv("PDF_READER", or(fc.Reader.Kind, ReaderNative))),
			PdftotextBin: getEnv("PDFTOTEXT_BIN", or(fc.Reader.PdftotextBin, "pdftotext")),
		},
		Server: ServerConfig{
			Addr:        getEnv("HTTP_ADDR", or(fc.Server.Addr, ":8501")),
			MaxUploadMB: getEnvAsInt64("MAX_UPLOAD_MB", orInt(fc.Server.MaxUploadMB, 200)),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", or(fc.Log.Level, "info")),
			Format: getEnv("LOG_FORMAT", or(fc.Log.Format, "text")),
		},
	}
	return cfg, nil
}

// CredentialName is the environment variable the configured provider reads its key from.
func (c *Config) CredentialName() string {
	if c.LLM.Provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// HasCredential reports whether a model API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}

// Validate validates the loaded configuration. A missing credential is not an
// error: it only disables the model-backed strategy.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLM.Provider), ErrInvalidInput)
	}
	switch c.Reader.Kind {
	case ReaderNative, ReaderPdftotext:
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("PDF_READER must be %q or %q, got %q", ReaderNative, ReaderPdftotext, c.Reader.Kind), ErrInvalidInput)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return NewAppError(CodeConfig, "LLM_TEMPERATURE must be within 0..2", ErrInvalidInput)
	}
	if c.LLM.Timeout < 0 {
		return NewAppError(CodeConfig, "LLM_TIMEOUT must not be negative", ErrInvalidInput)
	}
	if c.Server.MaxUploadMB <= 0 {
		return NewAppError(CodeConfig, "MAX_UPLOAD_MB must be positive", ErrInvalidInput)
	}
	return nil
}

func defaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.5-flash"
}

func credentialFromEnv(provider, fileValue string) string {
	if provider == ProviderOpenAI {
		return getEnv("OPENAI_API_KEY", fileValue)
	}
	return getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", fileValue))
}

func or(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func orInt(v, def int64) int64 {
	if v != 0 {
		return v
	}
	return def
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
