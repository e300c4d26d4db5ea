package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadConfig looks when no --config flag is given.
const DefaultPath = "fhevm-examples.yaml"

const (
	DefaultBaseTemplateURL = "https://github.com/zama-ai/fhevm-hardhat-template.git"
	UncategorizedCategory  = "uncategorized"
)

var ErrUnknownExample = errors.New("unknown example")

type Example struct {
	Name             string `yaml:"name"`
	Category         string `yaml:"category"`
	ContractTemplate string `yaml:"contract_template"`
	TestTemplate     string `yaml:"test_template"`
}

type Config struct {
	BaseTemplate struct {
		URL string `yaml:"url"`
		Dir string `yaml:"dir"`
	} `yaml:"base_template"`
	Paths struct {
		Templates string `yaml:"templates"`
		Output    string `yaml:"output"`
		Docs      string `yaml:"docs"`
		Database  string `yaml:"database"`
	} `yaml:"paths"`
	Toolchain struct {
		Enabled bool          `yaml:"enabled"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"toolchain"`
	Git struct {
		InitRepo bool `yaml:"init_repo"`
	} `yaml:"git"`
	LogLevel   string            `yaml:"log_level"`
	Examples   []Example         `yaml:"examples"`
	Categories map[string]string `yaml:"categories"` // example name -> gitbook category
}

// DefaultConfig returns the built-in example set and directory layout.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.BaseTemplate.URL = DefaultBaseTemplateURL
	cfg.BaseTemplate.Dir = "base-template"
	cfg.Paths.Templates = "templates"
	cfg.Paths.Output = "scaffolded"
	cfg.Paths.Docs = "docs"
	cfg.Paths.Database = "fhevm-examples.db"
	cfg.Toolchain.Enabled = false
	cfg.Toolchain.Timeout = 10 * time.Minute
	cfg.Git.InitRepo = true
	cfg.LogLevel = "info"

	for _, ex := range []struct{ name, category string }{
		{"basic-counter", "getting-started"},
		{"arithmetic", "operations"},
		{"equality", "comparisons"},
		{"encrypt-single-value", "encryption"},
		{"access-control", "permissions"},
		{"input-proofs", "security"},
	} {
		cfg.Examples = append(cfg.Examples, Example{
			Name:             ex.name,
			Category:         ex.category,
			ContractTemplate: filepath.Join("templates", "contracts", ex.name+".sol"),
			TestTemplate:     filepath.Join("templates", "tests", ex.name+".test.ts"),
		})
	}

	cfg.Categories = map[string]string{
		"basic-counter":        "getting-started",
		"arithmetic":           "operations",
		"equality":             "comparisons",
		"encrypt-single-value": "encryption",
		"access-control":       "permissions",
		"input-proofs":         "security",
		"blind-auction":        "advanced",
		"openzeppelin-erc7984": "tokens",
	}
	return cfg
}

// LoadConfig reads path on top of DefaultConfig. A missing file is not an
// error; the defaults are used as is.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// 3. Override with Environment Variables if present
	if out := os.Getenv("FHEVM_EXAMPLES_OUTPUT_DIR"); out != "" {
		cfg.Paths.Output = out
	}
	if url := os.Getenv("FHEVM_EXAMPLES_BASE_TEMPLATE_URL"); url != "" {
		cfg.BaseTemplate.URL = url
	}
	if level := os.Getenv("FHEVM_EXAMPLES_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if db := os.Getenv("FHEVM_EXAMPLES_DB"); db != "" {
		cfg.Paths.Database = db
	}

	return cfg, nil
}

// Validate checks the example list. Template files must exist relative to
// the working directory.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Examples))

	for i, ex := range c.Examples {
		if ex.Name == "" {
			errs = append(errs, fmt.Errorf("examples[%d]: name is required", i))
			continue
		}
		if seen[ex.Name] {
			errs = append(errs, fmt.Errorf("examples[%d]: duplicate name %q", i, ex.Name))
		}
		seen[ex.Name] = true

		for _, p := range []string{ex.ContractTemplate, ex.TestTemplate} {
			if p == "" {
				errs = append(errs, fmt.Errorf("example %s: template path is required", ex.Name))
				continue
			}
			if _, err := os.Stat(p); err != nil {
				errs = append(errs, fmt.Errorf("example %s: %w", ex.Name, err))
			}
		}
	}

	if c.Toolchain.Timeout < 0 {
		errs = append(errs, fmt.Errorf("toolchain.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Example looks up a configured example by name.
func (c *Config) Example(name string) (Example, error) {
	for _, ex := range c.Examples {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Example{}, fmt.Errorf("%w: %s", ErrUnknownExample, name)
}

// CategoryFor maps an example name to its documentation category.
func (c *Config) CategoryFor(name string) string {
	if cat, ok := c.Categories[name]; ok && cat != "" {
		return cat
	}
	for _, ex := range c.Examples {
		if ex.Name == name && ex.Category != "" {
			return ex.Category
		}
	}
	return UncategorizedCategory
}
