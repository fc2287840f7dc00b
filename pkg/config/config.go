package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockPulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Backend struct {
		// none | kafka | clickhouse: where finalized records are delivered
		// besides the HTTP dataset.
		Type string `yaml:"type"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
	Cache struct {
		// none | memory | redis: read-through cache in front of adapter calls
		Backend string        `yaml:"backend"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Universe struct {
		Index    string   `yaml:"index"`
		MaxCount int      `yaml:"max_count"`
		Fallback []string `yaml:"fallback"`
	} `yaml:"universe"`
	Providers struct {
		NSE struct {
			BaseURL   string        `yaml:"base_url"`
			HomeURL   string        `yaml:"home_url"`
			UserAgent string        `yaml:"user_agent"`
			Timeout   time.Duration `yaml:"timeout"`
		} `yaml:"nse"`
		Yahoo struct {
			BaseURL string        `yaml:"base_url"`
			Suffix  string        `yaml:"suffix"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
		NewsAPI struct {
			BaseURL  string        `yaml:"base_url"`
			APIKey   string        `yaml:"api_key"`
			Keywords []string      `yaml:"keywords"`
			Timeout  time.Duration `yaml:"timeout"`
		} `yaml:"newsapi"`
		Priority struct {
			Quote       []string `yaml:"quote"`
			History     []string `yaml:"history"`
			Derivatives []string `yaml:"derivatives"`
			News        []string `yaml:"news"`
		} `yaml:"priority"`
		RateLimit struct {
			Capacity  float64 `yaml:"capacity"`
			RefillPer float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"providers"`
	Indicators struct {
		ShortWindow  int `yaml:"short_window"`
		LongWindow   int `yaml:"long_window"`
		LookbackDays int `yaml:"lookback_days"`
	} `yaml:"indicators"`
	Sentiment struct {
		MaxArticles int `yaml:"max_articles"`
	} `yaml:"sentiment"`
	Recommendation struct {
		BuyThreshold  float64 `yaml:"buy_threshold"`
		SellThreshold float64 `yaml:"sell_threshold"`
	} `yaml:"recommendation"`
	Pipeline struct {
		Workers      int           `yaml:"workers"`
		RetryBackoff time.Duration `yaml:"retry_backoff"`
		Interval     time.Duration `yaml:"interval"`
	} `yaml:"pipeline"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWSAPI_API_KEY"); v != "" {
		c.Providers.NewsAPI.APIKey = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Universe.Fallback = strings.Split(v, ",")
	}
	if v := os.Getenv("UNIVERSE_MAX"); v != "" {
		if n := util.ParseIntDefault(v, 0); n > 0 {
			c.Universe.MaxCount = n
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Universe.MaxCount == 0 {
		c.Universe.MaxCount = 300
	}
	if c.Indicators.ShortWindow == 0 {
		c.Indicators.ShortWindow = 9
	}
	if c.Indicators.LongWindow == 0 {
		c.Indicators.LongWindow = 50
	}
	if c.Indicators.LookbackDays == 0 {
		c.Indicators.LookbackDays = 365
	}
	if c.Sentiment.MaxArticles == 0 {
		c.Sentiment.MaxArticles = 10
	}
	if c.Recommendation.BuyThreshold == 0 {
		c.Recommendation.BuyThreshold = 0.2
	}
	if c.Recommendation.SellThreshold == 0 {
		c.Recommendation.SellThreshold = -0.2
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 8
	}
	if c.Pipeline.RetryBackoff == 0 {
		c.Pipeline.RetryBackoff = 500 * time.Millisecond
	}
	if c.Providers.RateLimit.Capacity == 0 {
		c.Providers.RateLimit.Capacity = 5
	}
	if c.Providers.RateLimit.RefillPer == 0 {
		c.Providers.RateLimit.RefillPer = 2
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "none"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "none"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Backend.Type {
	case "none", "kafka", "clickhouse":
	default:
		return fmt.Errorf("backend.type must be 'none', 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'none', 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if len(c.Universe.Fallback) == 0 {
		return fmt.Errorf("universe.fallback cannot be empty")
	}
	if c.Indicators.ShortWindow < 2 {
		return fmt.Errorf("indicators.short_window must be at least 2")
	}
	if c.Indicators.ShortWindow >= c.Indicators.LongWindow {
		return fmt.Errorf("indicators.short_window must be smaller than long_window")
	}
	if c.Recommendation.SellThreshold > c.Recommendation.BuyThreshold {
		return fmt.Errorf("recommendation.sell_threshold must not exceed buy_threshold")
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1")
	}
	return nil
}
