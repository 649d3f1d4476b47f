package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"MacroGold/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Digest struct {
		HeaderPrefix string        `yaml:"header_prefix" default:"🕒 Gold macro data update"`
		Schedule     string        `yaml:"schedule" default:"0 7 * * *"` // cron, serve mode only
		CacheTTL     time.Duration `yaml:"cache_ttl" default:"10m"`
	} `yaml:"digest"`
	Telegram struct {
		Token   string        `yaml:"token"`
		ChatID  string        `yaml:"chat_id"`
		APIBase string        `yaml:"api_base" default:"https://api.telegram.org" validate:"url"`
		Timeout time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"telegram"`
	Sources struct {
		Order     []string `yaml:"order" default:"[\"reserves\",\"holdings\",\"price\",\"positioning\"]"`
		UserAgent string   `yaml:"user_agent" default:"Mozilla/5.0"`
		Reserves  struct {
			URL        string        `yaml:"url" default:"https://www.gold.org/goldhub/data/gold-reserves-by-country" validate:"url"`
			Timeout    time.Duration `yaml:"timeout" default:"30s"`
			MinSupport int           `yaml:"min_support" default:"6" validate:"gt=0"`
			TopK       int           `yaml:"top_k" default:"5" validate:"gt=0"`
		} `yaml:"reserves"`
		Holdings struct {
			URL         string        `yaml:"url" default:"https://www.spdrgoldshares.com/assets/dynamic/GLD/GLD_US_archive_EN.csv" validate:"url"`
			Timeout     time.Duration `yaml:"timeout" default:"30s"`
			Lookback    int           `yaml:"lookback" default:"5" validate:"gte=2"`
			ColumnToken string        `yaml:"column_token" default:"Tonne"`
		} `yaml:"holdings"`
		Price struct {
			URL      string        `yaml:"url" default:"https://stooq.com/q/d/l/?s=iau.us&i=d" validate:"url"`
			Timeout  time.Duration `yaml:"timeout" default:"30s"`
			Lookback int           `yaml:"lookback" default:"5" validate:"gte=2"`
			Column   string        `yaml:"column" default:"Close"`
		} `yaml:"price"`
		Positioning struct {
			URL           string        `yaml:"url" default:"https://www.cftc.gov/dea/newcot/f_disagg.txt" validate:"url"`
			Timeout       time.Duration `yaml:"timeout" default:"30s"`
			ContractToken string        `yaml:"contract_token" default:"GOLD"`
		} `yaml:"positioning"`
	} `yaml:"sources"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file. A missing file is not an
// error: the struct defaults describe a fully working setup, and the original
// deployment ran from environment variables alone.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Absent Telegram credentials are a valid configuration: the
// digest then goes to local output instead of failing startup.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TG_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("TG_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("MACROGOLD_TOP_K"); v != "" {
		c.Sources.Reserves.TopK = util.ParseIntDefault(v, c.Sources.Reserves.TopK)
	}
	if v := os.Getenv("MACROGOLD_LOOKBACK"); v != "" {
		c.Sources.Holdings.Lookback = util.ParseIntDefault(v, c.Sources.Holdings.Lookback)
		c.Sources.Price.Lookback = util.ParseIntDefault(v, c.Sources.Price.Lookback)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if len(c.Sources.Order) == 0 {
		return fmt.Errorf("sources.order cannot be empty")
	}
	known := map[string]bool{"reserves": true, "holdings": true, "price": true, "positioning": true}
	for _, s := range c.Sources.Order {
		if !known[s] {
			return fmt.Errorf("sources.order: unknown source %q", s)
		}
	}
	return nil
}
