package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Terminal string `koanf:"terminal"` // identifies this POS terminal in events
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Backend struct {
		BaseURL   string        `koanf:"base_url"`
		Timeout   time.Duration `koanf:"timeout"`
		UserAgent string        `koanf:"user_agent"`
	} `koanf:"backend"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Catalog struct {
		CacheTTL time.Duration `koanf:"cache_ttl"`
	} `koanf:"catalog"`

	Poll struct {
		Interval time.Duration `koanf:"interval"`
	} `koanf:"poll"`

	Kafka struct {
		Brokers      []string `koanf:"brokers"` // empty disables eventing
		GroupID      string   `koanf:"group_id"`
		TopicOrders  string   `koanf:"topic_orders"`
		TopicTickets string   `koanf:"topic_tickets"`
	} `koanf:"kafka"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix POSAPI_, nested with __)
	// e.g. POSAPI_BACKEND__BASE_URL, POSAPI_REDIS__PASSWORD
	if err := k.Load(env.Provider("POSAPI_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "POSAPI_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr required")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.GroupID == "" {
		return fmt.Errorf("kafka.group_id required when brokers are set")
	}
	return nil
}
