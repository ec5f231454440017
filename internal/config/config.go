package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
	RefreshTTLDays   int    `yaml:"refresh_ttl_days"`
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
	JWT   JWTConfig `yaml:"jwt"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		AppBaseURL   string `yaml:"app_base_url"`
	} `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	path := os.Getenv("PANAL_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.JWT.AccessTTLMinutes <= 0 {
		cfg.JWT.AccessTTLMinutes = 60
	}
	if cfg.JWT.RefreshTTLDays <= 0 {
		cfg.JWT.RefreshTTLDays = 30
	}
	return &cfg
}
