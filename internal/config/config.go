package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth           AuthConfig     `yaml:"auth"`
	Email          EmailConfig    `yaml:"email"`
	Telegram       TelegramConfig `yaml:"telegram"`
	LoginPerMinute int            `yaml:"login_per_minute"`
}

func LoadConfig() *Config {
	return LoadConfigFrom("config/config.yaml")
}

func LoadConfigFrom(path string) *Config {
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
		cfg.Server.Port = 8000
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.LoginPerMinute == 0 {
		cfg.LoginPerMinute = 10
	}
	// the secret has no safe default
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.URL = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	return &cfg
}
