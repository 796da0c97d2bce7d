package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rorical/WolofBridge/internal/core"
)

const (
	HomeEnv     = "WOLOFBRIDGE_HOME"
	EndpointEnv = "WOLOFBRIDGE_ENDPOINT"

	DefaultProfile  = "default"
	DefaultEndpoint = "http://localhost:5000"
)

type Profile struct {
	Endpoint       string `json:"endpoint"`
	Policy         string `json:"policy,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Validate checks the endpoint URL and the request policy.
func (p Profile) Validate() error {
	u, err := url.Parse(p.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", p.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must use http or https", p.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", p.Endpoint)
	}
	if _, err := core.ParseRequestPolicy(p.Policy); err != nil {
		return err
	}
	if p.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
	path           string
}

// LoadEnv loads a .env file from the working directory if there is one.
func LoadEnv() {
	_ = godotenv.Load()
}

func LoadConfig() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// Current returns the active profile with environment overrides applied.
func (c *Config) Current() Profile {
	p := Profile{Endpoint: DefaultEndpoint}
	if c.currentProfile != nil {
		p = *c.currentProfile
	}
	if endpoint := os.Getenv(EndpointEnv); endpoint != "" {
		p.Endpoint = endpoint
	}
	return p
}

func (c *Config) IsValid() bool {
	return c.Current().Validate() == nil
}

func (c *Config) GetEndpoint() string {
	return c.Current().Endpoint
}

func (c *Config) GetPolicy() core.RequestPolicy {
	policy, err := core.ParseRequestPolicy(c.Current().Policy)
	if err != nil {
		return core.PolicyDisableTrigger
	}
	return policy
}

func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Current().TimeoutSeconds) * time.Second
}

// Dir returns the directory holding config.json and the log file.
func Dir() (string, error) {
	base := os.Getenv(HomeEnv)
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = homeDir
	}
	return filepath.Join(base, ".wolofbridge"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewDefaultConfig returns a config with one profile pointing at a local backend.
func NewDefaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			DefaultProfile: {
				Endpoint: DefaultEndpoint,
				Policy:   string(core.PolicyDisableTrigger),
			},
		},
		ActiveProfile: DefaultProfile,
	}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := NewDefaultConfig()
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}
	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = Path(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	return saveConfig(c, configPath)
}

// Use makes name the active profile.
func (c *Config) Use(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// Delete removes a profile. Deleting the active profile activates another
// one, or recreates the default profile when none is left.
func (c *Config) Delete(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles[DefaultProfile] = NewDefaultConfig().Profiles[DefaultProfile]
		c.ActiveProfile = DefaultProfile
	}
	if c.ActiveProfile == name {
		c.ActiveProfile = ""
	}
	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// fall back to the first profile in name order
		var first string
		for name := range c.Profiles {
			if first == "" || name < first {
				first = name
			}
		}
		if first != "" {
			c.ActiveProfile = first
			profile = c.Profiles[first]
			exists = true
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
