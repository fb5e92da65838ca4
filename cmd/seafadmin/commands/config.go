package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"seafadmin/lib/configutil"
	"seafadmin/lib/mailutil"
	"seafadmin/lib/seafile/admin"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

const envPrefix = "SEAFADMIN_"

const (
	defaultRateLimit = 5
	defaultTimeout   = 30
)

type Config struct {
	// base url of the seafile server, ex. https://files.example.com
	Url      string `json:"url" env:"URL" validate:"required,url"`
	Username string `json:"username" env:"USERNAME" validate:"required"`
	Password string `json:"password" env:"PASSWORD"`
	// recipient of the report and contact shown in it
	AdminEmail string `json:"admin_email" env:"ADMIN_EMAIL" validate:"omitempty,email"`

	PageSize int `json:"page_size" env:"PAGE_SIZE" validate:"gte=0"`
	// requests per second
	RateLimit        float64 `json:"rate_limit" env:"RATE_LIMIT" validate:"gte=0"`
	TimeoutSeconds   int     `json:"timeout_seconds" env:"TIMEOUT_SECONDS" validate:"gte=0"`
	BypassCloudflare bool    `json:"bypass_cloudflare" env:"BYPASS_CLOUDFLARE"`

	Smtp mailutil.SmtpConfig `json:"smtp" envPrefix:"SMTP_"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = admin.DefaultPageSize
	}
	if c.RateLimit == 0 {
		c.RateLimit = defaultRateLimit
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeout
	}
	if c.Smtp.Port == 0 {
		c.Smtp.Port = 587
	}
}

// LoadConfig reads the config file (merged with its local override), then
// applies SEAFADMIN_* environment variables over it. A missing file is
// fine as long as the environment provides the required fields.
func LoadConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using the environment only", "path", path)
	} else if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	err = env.ParseWithOptions(&config, env.Options{Prefix: envPrefix})
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	config.applyDefaults()

	err = validator.New(validator.WithRequiredStructEnabled()).Struct(config)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
