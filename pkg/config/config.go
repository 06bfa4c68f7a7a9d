package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Chain       string `yaml:"chain"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Explorer struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"explorer"`
	PolygonExplorer struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"polygon_explorer"`
	RequestNetwork struct {
		SubgraphURL   string        `yaml:"subgraph_url"`
		InvoiceAPIURL string        `yaml:"invoice_api_url"`
		Timeout       time.Duration `yaml:"timeout"`
	} `yaml:"request_network"`
	BullaNetwork struct {
		SubgraphURL string        `yaml:"subgraph_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"bulla_network"`
	Superfluid struct {
		SubgraphURL string        `yaml:"subgraph_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"superfluid"`
	Allowlist struct {
		Endpoint string        `yaml:"endpoint"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"allowlist"`
	Web3 struct {
		ProviderURL string        `yaml:"provider_url"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"web3"`
	Bank struct {
		BaseURL      string        `yaml:"base_url"`
		ClientID     string        `yaml:"client_id"`
		ClientSecret string        `yaml:"client_secret"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"bank"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
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

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. A .env file next to the process is applied first when present.
func LoadWithEnv(path string) (*Config, error) {
	// Missing .env is fine; real deployments use actual env vars.
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CHAIN"); v != "" {
		c.Chain = v
	}
	if v := os.Getenv("EXPLORER_API_KEY"); v != "" {
		c.Explorer.APIKey = v
	}
	if v := os.Getenv("EXPLORER_BASE_URL"); v != "" {
		c.Explorer.BaseURL = v
	}
	if v := os.Getenv("POLYGON_EXPLORER_API_KEY"); v != "" {
		c.PolygonExplorer.APIKey = v
	}
	if v := os.Getenv("POLYGON_EXPLORER_BASE_URL"); v != "" {
		c.PolygonExplorer.BaseURL = v
	}
	if v := os.Getenv("WEB3_PROVIDER_URL"); v != "" {
		c.Web3.ProviderURL = v
	}
	if v := os.Getenv("BANK_CLIENT_ID"); v != "" {
		c.Bank.ClientID = v
	}
	if v := os.Getenv("BANK_CLIENT_SECRET"); v != "" {
		c.Bank.ClientSecret = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Chain == "" {
		return fmt.Errorf("chain is required")
	}
	if c.Explorer.BaseURL == "" {
		return fmt.Errorf("explorer.base_url is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Cache.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when the cache is enabled")
	}
	return nil
}
