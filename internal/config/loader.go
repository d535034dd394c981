package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ReshmiMehta14/YaarAI/internal/logger"
)

// Config is the structure of config.yaml.
type Config struct {
	Model   ModelSettings   `yaml:"model"`
	Agents  AgentSettings   `yaml:"agents"`
	Memory  MemorySettings  `yaml:"memory"`
	Log     logger.Config   `yaml:"log"`
	Tracing TracingSettings `yaml:"tracing"`
	// PromptsPath locates the prompt pack; prompt text is configuration,
	// not code.
	PromptsPath string `yaml:"prompts_path"`
}

// ModelSettings holds the shared text-generation endpoint settings. The API
// key comes from the environment, never from the file.
type ModelSettings struct {
	Name                  string `yaml:"name"`
	BaseURL               string `yaml:"base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// RequestTimeout returns the per-call deadline applied by the call wrapper.
func (m ModelSettings) RequestTimeout() time.Duration {
	return time.Duration(m.RequestTimeoutSeconds) * time.Second
}

// AgentSettings holds the per-agent sampling temperatures and the response
// generator's output budget.
type AgentSettings struct {
	NormalizerTemperature float64 `yaml:"normalizer_temperature"`
	EmotionTemperature    float64 `yaml:"emotion_temperature"`
	ContextTemperature    float64 `yaml:"context_temperature"`
	ResponseTemperature   float64 `yaml:"response_temperature"`
	FeedbackTemperature   float64 `yaml:"feedback_temperature"`
	ResponseMaxTokens     int     `yaml:"response_max_tokens"`
}

// MemorySettings bounds the per-session state.
type MemorySettings struct {
	MaxHistory int `yaml:"max_history"`
}

// TracingSettings configures span export. An empty endpoint leaves tracing
// as a no-op.
type TracingSettings struct {
	Endpoint string `yaml:"endpoint"`
}

// Load reads configuration from a YAML file and fills in defaults.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Model.Name == "" {
		c.Model.Name = "gpt-3.5-turbo"
	}
	if c.Model.RequestTimeoutSeconds <= 0 {
		c.Model.RequestTimeoutSeconds = 60
	}
	if c.Agents.NormalizerTemperature == 0 {
		c.Agents.NormalizerTemperature = 0.3
	}
	if c.Agents.EmotionTemperature == 0 {
		c.Agents.EmotionTemperature = 0.7
	}
	if c.Agents.ContextTemperature == 0 {
		c.Agents.ContextTemperature = 0.5
	}
	if c.Agents.ResponseTemperature == 0 {
		c.Agents.ResponseTemperature = 0.7
	}
	if c.Agents.FeedbackTemperature == 0 {
		c.Agents.FeedbackTemperature = 0.5
	}
	if c.Agents.ResponseMaxTokens <= 0 {
		c.Agents.ResponseMaxTokens = 300
	}
	if c.Memory.MaxHistory <= 0 {
		c.Memory.MaxHistory = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.PromptsPath == "" {
		c.PromptsPath = "prompts.yaml"
	}
}
