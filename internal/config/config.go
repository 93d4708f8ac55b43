package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Tavily    TavilyConfig    `yaml:"tavily" mapstructure:"tavily"`
	Trends    TrendsConfig    `yaml:"trends" mapstructure:"trends"`
	Reddit    RedditConfig    `yaml:"reddit" mapstructure:"reddit"`
	Workflow  WorkflowConfig  `yaml:"workflow" mapstructure:"workflow"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key                string  `yaml:"key" mapstructure:"key"`
	Model              string  `yaml:"model" mapstructure:"model"`
	Temperature        float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokensFull      int64   `yaml:"max_tokens_full" mapstructure:"max_tokens_full"`
	MaxTokensQuick     int64   `yaml:"max_tokens_quick" mapstructure:"max_tokens_quick"`
	ProbeTimeoutSecs   int     `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
	RequestTimeoutSecs int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// TavilyConfig holds Tavily search API settings.
type TavilyConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// TrendsConfig holds SerpApi Google Trends settings.
type TrendsConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Geo     string `yaml:"geo" mapstructure:"geo"`
}

// RedditConfig holds Reddit search settings.
type RedditConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	Limit     int    `yaml:"limit" mapstructure:"limit"`
}

// WorkflowConfig configures the validation workflow.
type WorkflowConfig struct {
	StagePauseMs       int `yaml:"stage_pause_ms" mapstructure:"stage_pause_ms"`
	BatchMaxConcurrent int `yaml:"batch_max_concurrent" mapstructure:"batch_max_concurrent"`
	BatchMaxItems      int `yaml:"batch_max_items" mapstructure:"batch_max_items"`
}

// RetryConfig configures the retry policy for external calls.
type RetryConfig struct {
	MaxAttempts        int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffSecs float64 `yaml:"initial_backoff_secs" mapstructure:"initial_backoff_secs"`
	MaxBackoffSecs     float64 `yaml:"max_backoff_secs" mapstructure:"max_backoff_secs"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VENTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credential keys default to empty so viper knows them;
	// AutomaticEnv only resolves keys it has seen, so without these the
	// VENTURE_*_KEY variables would be silently ignored.
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.temperature", 0.7)
	v.SetDefault("anthropic.max_tokens_full", 4000)
	v.SetDefault("anthropic.max_tokens_quick", 1500)
	v.SetDefault("anthropic.probe_timeout_secs", 10)
	v.SetDefault("anthropic.request_timeout_secs", 120)
	v.SetDefault("tavily.key", "")
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("tavily.max_results", 10)
	v.SetDefault("trends.key", "")
	v.SetDefault("trends.base_url", "https://serpapi.com")
	v.SetDefault("trends.geo", "")
	v.SetDefault("reddit.base_url", "https://www.reddit.com")
	v.SetDefault("reddit.user_agent", "venture-check/1.0")
	v.SetDefault("reddit.limit", 50)
	v.SetDefault("workflow.stage_pause_ms", 1000)
	v.SetDefault("workflow.batch_max_concurrent", 3)
	v.SetDefault("workflow.batch_max_items", 10)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_secs", 2)
	v.SetDefault("retry.max_backoff_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that required credentials are present for a full
// validation run. The workflow tolerates missing data sources, but the
// LLM key is mandatory.
func (c *Config) Validate() error {
	if c.Anthropic.Key == "" {
		return eris.New("config: anthropic.key is required (VENTURE_ANTHROPIC_KEY)")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
