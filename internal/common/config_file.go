package common

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file schema.
type FileConfig struct {
	LLM struct {
		Provider    string        `yaml:"provider"`
		Model       string        `yaml:"model"`
		APIKey      string        `yaml:"key"`
		BaseURL     string        `yaml:"base"`
		Temperature float32       `yaml:"temperature"`
		Timeout     time.Duration `yaml:"timeout"`
		Lenient     *bool         `yaml:"lenient"`
	} `yaml:"llm"`

	Reader struct {
		Kind         string `yaml:"kind"`
		PdftotextBin string `yaml:"pdftotext"`
	} `yaml:"reader"`

	Server struct {
		Addr        string `yaml:"addr"`
		MaxUploadMB int64  `yaml:"maxUploadMB"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse yaml: %w", err)
	}
	return fc, nil
}
