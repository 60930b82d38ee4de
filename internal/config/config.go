package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "REPOSCOUT_CONFIG"
	logLevelEnv       = "REPOSCOUT_LOG_LEVEL"
	githubTokenEnv    = "GITHUB_TOKEN"
	anthropicKeyEnv   = "ANTHROPIC_API_KEY"
	anthropicModelEnv = "ANTHROPIC_MODEL"
	notionKeyEnv      = "NOTION_API_KEY"
	notionDatabaseEnv = "NOTION_DATABASE_ID"
	gmailUserEnv      = "GMAIL_USER"
	gmailPassEnv      = "GMAIL_PASS"
	alertEmailEnv     = "ALERT_EMAIL"
)

// Config holds all settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Search  SearchConfig  `yaml:"search"`
	Ranking RankingConfig `yaml:"ranking"`
	Store   StoreConfig   `yaml:"store"`
	Email   EmailConfig   `yaml:"email"`
	Report  ReportConfig  `yaml:"report"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig drives repository discovery.
type SearchConfig struct {
	Token        string   `yaml:"token"`
	Providers    []string `yaml:"providers"`
	Languages    []string `yaml:"languages"`
	Keywords     []string `yaml:"keywords"`
	MinStars     int      `yaml:"minStars"`
	UpdatedSince string   `yaml:"updatedSince"`
	MaxResults   int      `yaml:"maxResults"`
	PageSize     int      `yaml:"pageSize"`
}

// RankingConfig drives the batch ranking stage.
type RankingConfig struct {
	APIKey             string   `yaml:"apiKey"`
	Model              string   `yaml:"model"`
	Skills             []string `yaml:"skills"`
	BatchSize          int      `yaml:"batchSize"`
	RelevantThreshold  int      `yaml:"relevantThreshold"`
	CandidateThreshold int      `yaml:"candidateThreshold"`
}

// StoreConfig points at the tracking database.
type StoreConfig struct {
	APIKey     string `yaml:"apiKey"`
	DatabaseID string `yaml:"databaseId"`
	BaseURL    string `yaml:"baseUrl"`
}

// EmailConfig wires the insertion digest transport. All three credentials are
// optional; any missing one turns sending into a no-op.
type EmailConfig struct {
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
	OnInsert  bool   `yaml:"onInsert"`
}

// ReportConfig controls console output outside the final summary.
type ReportConfig struct {
	ShowProgress bool `yaml:"showProgress"`
	SummaryOnly  bool `yaml:"summaryOnly"`
}

// Load reads YAML configuration (if present) over the defaults and applies
// environment overrides on top.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports every missing mandatory credential at once. Search and
// store credentials are required before any work starts; everything else is
// optional by design.
func (c Config) Validate() error {
	var missing []string
	if c.Search.Token == "" {
		missing = append(missing, githubTokenEnv)
	}
	if c.Store.APIKey == "" {
		missing = append(missing, notionKeyEnv)
	}
	if c.Store.DatabaseID == "" {
		missing = append(missing, notionDatabaseEnv)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(githubTokenEnv); v != "" {
		c.Search.Token = v
	}
	if v := os.Getenv(anthropicKeyEnv); v != "" {
		c.Ranking.APIKey = v
	}
	if v := os.Getenv(anthropicModelEnv); v != "" {
		c.Ranking.Model = v
	}
	if v := os.Getenv(notionKeyEnv); v != "" {
		c.Store.APIKey = v
	}
	if v := os.Getenv(notionDatabaseEnv); v != "" {
		c.Store.DatabaseID = v
	}
	if v := os.Getenv(gmailUserEnv); v != "" {
		c.Email.User = v
	}
	if v := os.Getenv(gmailPassEnv); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv(alertEmailEnv); v != "" {
		c.Email.Recipient = v
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Providers:    []string{"github"},
			Languages:    []string{"Python", "JavaScript", "TypeScript"},
			Keywords:     []string{"ideas", "gsoc", "contribution", "student"},
			MinStars:     5,
			UpdatedSince: "2024-01-01",
			MaxResults:   300,
			PageSize:     100,
		},
		Ranking: RankingConfig{
			Skills:             []string{"Python", "FastAPI", "Next.js", "React", "TypeScript", "Tailwind", "shadcn/ui"},
			BatchSize:          20,
			RelevantThreshold:  60,
			CandidateThreshold: 60,
		},
		Email: EmailConfig{OnInsert: true},
		Report: ReportConfig{
			ShowProgress: true,
			SummaryOnly:  false,
		},
	}
}
