// Package config loads service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	SourceFile  = "file"
	SourceMongo = "mongo"
)

type Config struct {
	Port           string `env:"PORT,             default=8080"`
	Env            string `env:"ENV,              default=development"`
	LogLevel       string `env:"LOG_LEVEL,        default=info"`
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET"`

	Catalog        CatalogConfig
	LLM            LLMConfig
	Recommendation RecommendationConfig
	Mongo          MongoConfig
	Redis          RedisConfig
}

type CatalogConfig struct {
	Source         string        `env:"CATALOG_SOURCE,          default=file"`
	Path           string        `env:"CATALOG_PATH,            default=data/catalog.json"`
	ReloadInterval time.Duration `env:"CATALOG_RELOAD_INTERVAL, default=0s"`
}

type LLMConfig struct {
	Provider        string        `env:"LLM_PROVIDER,     default=openai"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	BaseURL         string        `env:"LLM_BASE_URL"`
	Model           string        `env:"LLM_MODEL"`
	MaxTokens       int           `env:"LLM_MAX_TOKENS,   default=1024"`
	Temperature     float64       `env:"LLM_TEMPERATURE,  default=0.7"`
	Timeout         time.Duration `env:"LLM_TIMEOUT,      default=30s"`
	MaxRetries      int           `env:"LLM_MAX_RETRIES,  default=2"`
}

type RecommendationConfig struct {
	Count          int           `env:"RECOMMENDATION_COUNT,      default=3"`
	RateLimit      float64       `env:"RECOMMENDATION_RATE_LIMIT, default=1"`
	PromptTemplate string        `env:"PROMPT_TEMPLATE_PATH"`
	CacheTTL       time.Duration `env:"CACHE_TTL,                 default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=experiences"`
}

// RedisConfig is optional; an empty Addr disables the recommendation cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from the process environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	case ProviderAnthropic:
		if c.LLM.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, c.LLM.Provider))
	}

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("CATALOG_PATH is required when CATALOG_SOURCE=file"))
		}
	case SourceMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required when CATALOG_SOURCE=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", SourceFile, SourceMongo, c.Catalog.Source))
	}

	if c.Catalog.ReloadInterval < 0 {
		errs = append(errs, errors.New("CATALOG_RELOAD_INTERVAL must not be negative"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_TOKENS must be positive"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("LLM_TEMPERATURE must be between 0 and 2"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be positive"))
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, errors.New("LLM_MAX_RETRIES must not be negative"))
	}
	if c.Recommendation.Count < 1 || c.Recommendation.Count > 10 {
		errs = append(errs, errors.New("RECOMMENDATION_COUNT must be between 1 and 10"))
	}
	if c.Recommendation.RateLimit < 0 {
		errs = append(errs, errors.New("RECOMMENDATION_RATE_LIMIT must not be negative"))
	}
	if c.Recommendation.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	if c.LLM.Provider == ProviderAnthropic {
		return c.LLM.AnthropicAPIKey
	}
	return c.LLM.OpenAIAPIKey
}

// CacheEnabled reports whether the Redis recommendation cache should be used.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != "" && c.Recommendation.CacheTTL > 0
}
