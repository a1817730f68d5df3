// ABOUTME: YAML configuration loading with global and per-project layers
// ABOUTME: Project .goclaw.yaml overrides ~/.goclaw/config.yaml; env vars fill API keys

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig selects the provider and model and their connection settings.
type LLMConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	BaseURL       string `yaml:"base_url,omitempty"`
	APIKey        string `yaml:"api_key,omitempty"`
	APIKeyEnv     string `yaml:"api_key_env,omitempty"`
	MaxTokens     int64  `yaml:"max_tokens"`
	ContextWindow int    `yaml:"context_window"`
	Stream        bool   `yaml:"stream"`
}

// AgentConfig bounds the loop and sets the base system prompt.
type AgentConfig struct {
	MaxIterations int    `yaml:"max_iterations"`
	SystemPrompt  string `yaml:"system_prompt"`
}

// Config is the full application configuration.
type Config struct {
	LLM   LLMConfig   `yaml:"llm"`
	Agent AgentConfig `yaml:"agent"`
	Tools []string    `yaml:"tools,omitempty"` // enabled tool names; empty means all
	Yolo  bool        `yaml:"yolo"`            // auto-approve dangerous tool calls
}

const defaultSystemPrompt = "You are a helpful AI assistant. You can use tools to help " +
	"the user with tasks like reading files, writing files, executing commands, " +
	"and more. Be concise and helpful."

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:      "anthropic",
			Model:         "claude-sonnet-4-20250514",
			MaxTokens:     4096,
			ContextWindow: 131072,
			Stream:        true,
		},
		Agent: AgentConfig{
			MaxIterations: 20,
			SystemPrompt:  defaultSystemPrompt,
		},
	}
}

// Load reads the global config, overlays the project config found in dir
// (if any), and applies environment overrides. Missing files are fine.
func Load(dir string) (*Config, error) {
	cfg := Default()

	if path := GlobalConfigPath(); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if err := mergeFile(cfg, filepath.Join(dir, ".goclaw.yaml")); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("GOCLAW_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("GOCLAW_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("GOCLAW_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg. Only keys present in
// the file change; yaml.v3 leaves absent fields untouched when decoding
// into a populated struct.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// APIKey resolves the key for the configured provider: explicit api_key
// first, then api_key_env, then the provider's conventional variable.
func (c *Config) APIKey() (string, error) {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey, nil
	}
	envs := []string{}
	if c.LLM.APIKeyEnv != "" {
		envs = append(envs, c.LLM.APIKeyEnv)
	}
	switch c.LLM.Provider {
	case "anthropic":
		envs = append(envs, "ANTHROPIC_API_KEY")
	case "openai":
		envs = append(envs, "OPENAI_API_KEY")
	}
	envs = append(envs, "LLM_API_KEY")

	for _, env := range envs {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("API key not found: set api_key in %s or export %s", GlobalConfigPath(), envs[0])
}

// Save writes cfg to the global config path, creating directories as needed.
func (c *Config) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
