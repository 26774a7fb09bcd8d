package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	ExpireMinutes int    `yaml:"expire_minutes"`
	LeewaySeconds int    `yaml:"leeway_seconds"`
}

func (c JWTConfig) TTL() time.Duration {
	if c.ExpireMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(c.ExpireMinutes) * time.Minute
}

func (c JWTConfig) Leeway() time.Duration {
	if c.LeewaySeconds <= 0 {
		return 0
	}
	return time.Duration(c.LeewaySeconds) * time.Second
}

// SMSConfig configures the transmit SMS gateway used for OTP delivery.
type SMSConfig struct {
	BaseURL   string `yaml:"base_url"`
	Endpoint  string `yaml:"endpoint"`
	Username  string `yaml:"username"`
	SecretKey string `yaml:"secret_key"`
	ServiceID string `yaml:"service_id"`
	DryRun    bool   `yaml:"dry_run"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Enabled  bool   `yaml:"enabled"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMS      SMSConfig      `yaml:"sms"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	path := os.Getenv("TIKONCHA_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.Secret == "" {
		// allow env override so the secret never has to live in the file
		cfg.JWT.Secret = os.Getenv("JWT_SECRET_KEY")
	}
	if cfg.JWT.Secret == "" {
		panic("jwt.secret is required (file or JWT_SECRET_KEY)")
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 60
	}
	return &cfg
}
