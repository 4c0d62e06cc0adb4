package main

import (
	"fmt"
	"time"

	"github.com/kbukum/linguist/config"
	"github.com/kbukum/linguist/gemini"
	"github.com/kbukum/linguist/httpclient"
	"github.com/kbukum/linguist/linguist"
	"github.com/kbukum/linguist/llm"
	"github.com/kbukum/linguist/observability"
	"github.com/kbukum/linguist/redis"
	"github.com/kbukum/linguist/resilience"
	"github.com/kbukum/linguist/server"
	"github.com/kbukum/linguist/storage/local"
	"github.com/kbukum/linguist/storage/s3"
	"github.com/kbukum/linguist/version"
)

// History backends.
const (
	HistoryLocal    = "local"
	HistoryRedis    = "redis"
	HistoryS3       = "s3"
	HistoryDisabled = "none"
)

// AppConfig is the full service configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config              `yaml:"server" mapstructure:"server"`
	Providers ProvidersConfig            `yaml:"providers" mapstructure:"providers"`
	Retry     resilience.RetryPolicy     `yaml:"retry" mapstructure:"retry"`
	History   HistoryConfig              `yaml:"history" mapstructure:"history"`
	Tracing   observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics   observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ProvidersConfig configures both inference providers.
type ProvidersConfig struct {
	Primary  PrimaryConfig  `yaml:"primary" mapstructure:"primary"`
	Fallback FallbackConfig `yaml:"fallback" mapstructure:"fallback"`
	// TranslationLanguage is the language translations and explanations use.
	TranslationLanguage string `yaml:"translation_language" mapstructure:"translation_language"`
}

// PrimaryConfig configures the multimodal provider.
type PrimaryConfig struct {
	gemini.Config `yaml:",inline" mapstructure:",squash"`
	SpeechModel   string `yaml:"speech_model" mapstructure:"speech_model"`
	Voice         string `yaml:"voice" mapstructure:"voice"`
}

// FallbackConfig configures the text-only provider.
type FallbackConfig struct {
	llm.Config `yaml:",inline" mapstructure:",squash"`
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
}

// HistoryConfig selects and configures the history backend.
type HistoryConfig struct {
	Backend string       `yaml:"backend" mapstructure:"backend"`
	Local   local.Config `yaml:"local" mapstructure:"local"`
	Redis   redis.Config `yaml:"redis" mapstructure:"redis"`
	S3      s3.Config    `yaml:"s3" mapstructure:"s3"`
}

// envAliases maps config keys to the plain variable names deployments use.
// Later names win.
var envAliases = map[string][]string{
	"providers.primary.api_key":  {"API_KEY", "GEMINI_API_KEY"},
	"providers.fallback.api_key": {"DEEPSEEK_API_KEY"},
}

// loadConfig reads config.yml, .env and the environment.
func loadConfig(configFile string) (*AppConfig, error) {
	opts := []config.LoaderOption{}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	for key, names := range envAliases {
		opts = append(opts, config.WithAlias(key, names...))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig("linguist", cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "linguist"
	}
	if c.Version == "" {
		c.Version = version.Get().String()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Providers.Primary.ApplyDefaults()
	c.Providers.Primary.Name = "primary"
	if c.Providers.Fallback.Dialect == "" {
		c.Providers.Fallback.Dialect = "openai"
	}
	if c.Providers.Fallback.BaseURL == "" {
		c.Providers.Fallback.BaseURL = "https://api.deepseek.com"
	}
	if c.Providers.Fallback.Model == "" {
		c.Providers.Fallback.Model = "deepseek-chat"
	}
	if c.Providers.Fallback.Timeout <= 0 {
		c.Providers.Fallback.Timeout = 90 * time.Second
	}
	c.Providers.Fallback.Name = "fallback"
	if c.Providers.Fallback.APIKey != "" {
		c.Providers.Fallback.Auth = httpclient.BearerAuth(c.Providers.Fallback.APIKey)
	}
	c.Retry.ApplyDefaults()
	if c.History.Backend == "" {
		c.History.Backend = HistoryLocal
	}
	c.History.Local.ApplyDefaults()
	c.History.Redis.ApplyDefaults()
	c.History.Redis.Enabled = c.History.Backend == HistoryRedis
	c.History.S3.ApplyDefaults()
	c.Tracing.ApplyDefaults()
	c.Metrics.ApplyDefaults()
	c.Tracing.ServiceName, c.Tracing.ServiceVersion, c.Tracing.Environment = c.Name, c.Version, c.Environment
	c.Metrics.ServiceName, c.Metrics.ServiceVersion, c.Metrics.Environment = c.Name, c.Version, c.Environment
}

// Validate checks every section. A missing primary key is not an error here:
// the service starts and reports the missing credential per request.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Retry.Validate(); err != nil {
		return err
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	switch c.History.Backend {
	case HistoryLocal:
		return c.History.Local.Validate()
	case HistoryRedis:
		return c.History.Redis.Validate()
	case HistoryS3:
		return c.History.S3.Validate()
	case HistoryDisabled:
		return nil
	default:
		return fmt.Errorf("history.backend must be one of [local, redis, s3, none] (got: %s)", c.History.Backend)
	}
}

// routerConfig maps the provider settings onto the router.
func (c *AppConfig) routerConfig() linguist.Config {
	return linguist.Config{
		Credentials: linguist.Credentials{
			PrimaryKey:  c.Providers.Primary.APIKey,
			FallbackKey: c.Providers.Fallback.APIKey,
		},
		AnalysisModel:       c.Providers.Primary.Model,
		SpeechModel:         c.Providers.Primary.SpeechModel,
		Voice:               c.Providers.Primary.Voice,
		TranslationLanguage: c.Providers.TranslationLanguage,
		Retry:               c.Retry,
	}
}
