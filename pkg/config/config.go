// Package config loads the yaml configuration, fills defaults and validates it
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// DefaultSources are the news pages seeded into an empty source registry
var DefaultSources = []string{
	"https://mercomindia.com/",
	"https://www.pv-magazine-india.com/",
	"https://jmkresearch.com/",
	"https://www.pv-tech.org/",
	"https://energy.economictimes.indiatimes.com/",
	"https://www.business-standard.com/industry/news/power",
	"https://www.livemint.com/industry/energy",
}

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Batch scheduler configuration"`
	Fetcher    FetcherConfig    `yaml:"fetcher" json:"fetcher" jsonschema:"description=Candidate url harvesting"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article content extraction"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier" jsonschema:"description=Relevance gate thresholds"`
	Currency   CurrencyConfig   `yaml:"currency" json:"currency" jsonschema:"description=Currency conversion"`
	Training   TrainingConfig   `yaml:"training" json:"training" jsonschema:"description=Training profile"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM review of rejected articles"`
	Sources    []string         `yaml:"sources" json:"sources" jsonschema:"description=Source urls seeded on start"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:renewscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds batch runner settings
type ScheduleConfig struct {
	UpdateInterval         time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=6h,description=Interval between periodic batches"`
	SourceDelay            time.Duration `yaml:"source_delay" json:"source_delay" jsonschema:"default=5s,description=Pause between sources in a batch"`
	MaxRuntime             time.Duration `yaml:"max_runtime" json:"max_runtime" jsonschema:"default=10m,description=Batch is cancelled after this time"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures" json:"max_consecutive_failures" jsonschema:"default=5,minimum=1,description=Batch stops after this many failed sources in a row"`
	RunOnStart             bool          `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Run the first batch right after start"`
	ArticleRetention       time.Duration `yaml:"article_retention" json:"article_retention" jsonschema:"default=720h,description=Processed article urls are forgotten after this time"`
}

// FetcherConfig holds source page harvesting settings
type FetcherConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Source page request timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for source requests"`
	MaxCandidates int           `yaml:"max_candidates" json:"max_candidates" jsonschema:"default=30,minimum=1,description=Maximum candidate urls per source"`
	CategoryHops  int           `yaml:"category_hops" json:"category_hops" jsonschema:"default=3,minimum=0,description=Category pages followed per source"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots" jsonschema:"default=true,description=Check robots.txt before fetching"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Extraction timeout per article"`
	RateLimit     time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=1s,description=Minimum pause between article downloads"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for article requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=200,minimum=0,description=Minimum text length to consider valid"`
}

// ClassifierConfig holds relevance gate settings
type ClassifierConfig struct {
	CountryThreshold  float64 `yaml:"country_threshold" json:"country_threshold" jsonschema:"default=0.5,minimum=0,maximum=1,description=Minimum India relevance"`
	CategoryThreshold float64 `yaml:"category_threshold" json:"category_threshold" jsonschema:"default=0.4,minimum=0,maximum=1,description=Minimum best category score"`
	PipelineThreshold float64 `yaml:"pipeline_threshold" json:"pipeline_threshold" jsonschema:"default=0.4,minimum=0,maximum=1,description=Minimum pipeline stage score"`
	UseSimilarity     bool    `yaml:"use_similarity" json:"use_similarity" jsonschema:"default=false,description=Blend TF-IDF similarity into category scores"`
	SimilarityWeight  float64 `yaml:"similarity_weight" json:"similarity_weight" jsonschema:"default=0.2,minimum=0,maximum=1,description=Weight of the similarity score"`
}

// CurrencyConfig holds the exchange rate used to fill a missing investment currency
type CurrencyConfig struct {
	USDINR float64 `yaml:"usd_inr" json:"usd_inr" jsonschema:"default=82.5,description=Rupees per US dollar"`
}

// TrainingConfig holds training profile settings
type TrainingConfig struct {
	Profile string `yaml:"profile" json:"profile" jsonschema:"default=training_profile.json,description=Training profile side file"`
}

// LLMConfig holds LLM configuration for rejection review
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONMode  bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
}

// Enabled reports whether review is configured
func (c LLMConfig) Enabled() bool {
	return c.Endpoint != "" && c.Model != ""
}

// Load reads configuration from a YAML file. A .env file next to the working directory is
// loaded first, its variables are available for ${VAR} expansion.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		lgr.Printf("[WARN] can't load .env: %v", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := preset()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	cfg := preset()
	if err := cfg.finalize(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err)) // defaults are static
	}
	return &cfg
}

// preset holds defaults where the zero value is a valid setting
func preset() Config {
	return Config{Fetcher: FetcherConfig{CategoryHops: 3, RespectRobots: true}}
}

func (c *Config) finalize() error {
	setDefaults(c)

	if err := validate(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(c); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:renewscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 6 * time.Hour
	}
	if cfg.Schedule.SourceDelay == 0 {
		cfg.Schedule.SourceDelay = 5 * time.Second
	}
	if cfg.Schedule.MaxRuntime == 0 {
		cfg.Schedule.MaxRuntime = 10 * time.Minute
	}
	if cfg.Schedule.MaxConsecutiveFailures == 0 {
		cfg.Schedule.MaxConsecutiveFailures = 5
	}
	if cfg.Schedule.ArticleRetention == 0 {
		cfg.Schedule.ArticleRetention = 30 * 24 * time.Hour
	}

	// fetcher
	if cfg.Fetcher.Timeout == 0 {
		cfg.Fetcher.Timeout = 15 * time.Second
	}
	if cfg.Fetcher.MaxCandidates == 0 {
		cfg.Fetcher.MaxCandidates = 30
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 20 * time.Second
	}
	if cfg.Extraction.RateLimit == 0 {
		cfg.Extraction.RateLimit = time.Second
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 200
	}

	// classifier
	if cfg.Classifier.CountryThreshold == 0 {
		cfg.Classifier.CountryThreshold = 0.5
	}
	if cfg.Classifier.CategoryThreshold == 0 {
		cfg.Classifier.CategoryThreshold = 0.4
	}
	if cfg.Classifier.PipelineThreshold == 0 {
		cfg.Classifier.PipelineThreshold = 0.4
	}
	if cfg.Classifier.SimilarityWeight == 0 {
		cfg.Classifier.SimilarityWeight = 0.2
	}

	if cfg.Currency.USDINR == 0 {
		cfg.Currency.USDINR = 82.5
	}
	if cfg.Training.Profile == "" {
		cfg.Training.Profile = "training_profile.json"
	}

	// llm
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 300
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = append([]string(nil), DefaultSources...)
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	if cfg.Schedule.UpdateInterval < time.Minute {
		return errors.New("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Schedule.SourceDelay < 0 {
		return errors.New("schedule.source_delay must be non-negative")
	}
	if cfg.Schedule.MaxConsecutiveFailures < 1 {
		return errors.New("schedule.max_consecutive_failures must be at least 1")
	}

	if cfg.Fetcher.MaxCandidates < 1 {
		return errors.New("fetcher.max_candidates must be at least 1")
	}
	if cfg.Fetcher.CategoryHops < 0 {
		return errors.New("fetcher.category_hops must be non-negative")
	}

	if cfg.Extraction.Timeout < time.Second {
		return errors.New("extraction timeout must be at least 1 second")
	}
	if cfg.Extraction.MinTextLength < 0 {
		return errors.New("extraction min_text_length must be non-negative")
	}

	thresholds := map[string]float64{
		"classifier.country_threshold":  cfg.Classifier.CountryThreshold,
		"classifier.category_threshold": cfg.Classifier.CategoryThreshold,
		"classifier.pipeline_threshold": cfg.Classifier.PipelineThreshold,
		"classifier.similarity_weight":  cfg.Classifier.SimilarityWeight,
	}
	for name, v := range thresholds {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}

	if cfg.Currency.USDINR < 0 {
		return errors.New("currency.usd_inr must be positive")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if (cfg.LLM.Endpoint == "") != (cfg.LLM.Model == "") {
		return errors.New("llm.endpoint and llm.model must be set together")
	}
	return nil
}
