package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "VENDORMAIL_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "VENDORMAIL_AGENT_BASE_URL"
	EnvAgentToken        = "VENDORMAIL_AGENT_TOKEN"
	EnvAgentDeployment   = "VENDORMAIL_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "VENDORMAIL_AGENT_API_VERSION"
	EnvAgentAuthType     = "VENDORMAIL_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "VENDORMAIL_AGENT_MODEL_NAME"
)

// AgentsConfig holds one go-agents configuration per pipeline role. The
// classifier and extractor run at deterministic temperature; the drafter
// runs warmer for better prose.
type AgentsConfig struct {
	Classifier gaconfig.AgentConfig `toml:"classifier"`
	Extractor  gaconfig.AgentConfig `toml:"extractor"`
	Drafter    gaconfig.AgentConfig `toml:"drafter"`
}

// Finalize applies defaults, shared environment overrides, and validation
// to each role config.
func (c *AgentsConfig) Finalize() error {
	roles := []struct {
		name        string
		cfg         *gaconfig.AgentConfig
		temperature float64
	}{
		{"classifier", &c.Classifier, 0.0},
		{"extractor", &c.Extractor, 0.0},
		{"drafter", &c.Drafter, 0.3},
	}

	for _, role := range roles {
		if err := finalizeAgent(role.cfg, role.name, role.temperature); err != nil {
			return fmt.Errorf("%s: %w", role.name, err)
		}
	}

	return nil
}

// Merge overwrites non-zero fields from overlay for each role.
func (c *AgentsConfig) Merge(overlay *AgentsConfig) {
	c.Classifier.Merge(&overlay.Classifier)
	c.Extractor.Merge(&overlay.Extractor)
	c.Drafter.Merge(&overlay.Drafter)
}

func finalizeAgent(c *gaconfig.AgentConfig, name string, temperature float64) error {
	loadAgentDefaults(c)

	if c.Name == "" {
		c.Name = name
	}

	loadAgentEnv(c)

	if _, ok := c.Provider.Options["temperature"]; !ok {
		c.Provider.Options["temperature"] = temperature
	}

	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
