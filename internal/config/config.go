package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "config/config.yaml"

type FilesConfig struct {
	RootDir  string `yaml:"root_dir" toml:"root_dir"`
	FontPath string `yaml:"font_path" toml:"font_path"`
}

type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" toml:"api_key"`
	Model   string        `yaml:"model" toml:"model"`
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
}

type ChatConfig struct {
	MaxMessagesPerSession int           `yaml:"max_messages_per_session" toml:"max_messages_per_session"`
	RequestsPerMinute     int           `yaml:"requests_per_minute" toml:"requests_per_minute"`
	SessionTTL            time.Duration `yaml:"session_ttl" toml:"session_ttl"`
}

type Config struct {
	Server struct {
		Port      int           `yaml:"port" toml:"port"`
		JWTSecret string        `yaml:"jwt_secret" toml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl" toml:"token_ttl"`
	} `yaml:"server" toml:"server"`
	Database struct {
		DSN string `yaml:"url" toml:"url"`
	} `yaml:"database" toml:"database"`
	Gemini GeminiConfig `yaml:"gemini" toml:"gemini"`
	Chat   ChatConfig   `yaml:"chat" toml:"chat"`
	Events struct {
		PaymentDelay time.Duration `yaml:"payment_delay" toml:"payment_delay"`
	} `yaml:"events" toml:"events"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host" toml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port" toml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user" toml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password" toml:"smtp_password"`
		FromEmail    string `yaml:"from_email" toml:"from_email"`
	} `yaml:"email" toml:"email"`
	Telegram struct {
		BotToken string `yaml:"bot_token" toml:"bot_token"`
	} `yaml:"telegram" toml:"telegram"`
	Reminders struct {
		Interval time.Duration `yaml:"interval" toml:"interval"`
	} `yaml:"reminders" toml:"reminders"`
	Files FilesConfig `yaml:"files" toml:"files"`
}

// Load reads a YAML (or, by extension, TOML) config file, applies
// environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyEnv() {
	if v := os.Getenv("MINDZY_DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("MINDZY_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.TokenTTL == 0 {
		cfg.Server.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.Chat.MaxMessagesPerSession <= 0 {
		cfg.Chat.MaxMessagesPerSession = 10
	}
	if cfg.Chat.RequestsPerMinute <= 0 {
		cfg.Chat.RequestsPerMinute = 20
	}
	if cfg.Chat.SessionTTL == 0 {
		cfg.Chat.SessionTTL = 2 * time.Hour
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = 30 * time.Second
	}
	if cfg.Events.PaymentDelay == 0 {
		cfg.Events.PaymentDelay = 2 * time.Second
	}
	if cfg.Reminders.Interval == 0 {
		cfg.Reminders.Interval = time.Hour
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
}
