package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log      Log      `yaml:"log"`
	Server   Server   `yaml:"server"`
	Store    Store    `yaml:"store"`
	Ollama   Ollama   `yaml:"ollama"`
	Dialogue Dialogue `yaml:"dialogue"`
}

type Server struct {
	// Address the relay server listens on
	Addr string `yaml:"addr" example:":5050" validate:"required"`
	// Origin allowed to open websocket connections
	AllowedOrigin string `yaml:"allowed_origin" example:"http://localhost:3000"`
}

type Ollama struct {
	// Base url of the local Ollama instance
	BaseURL string `yaml:"base_url" example:"http://localhost:11434" validate:"required"`
	// Model to use for completions
	Model string `yaml:"model" example:"mistral" validate:"required"`
}

type Store struct {
	// Directory for the local badger database
	Dir string `yaml:"dir" example:"data/claims" validate:"required"`
	// Seed sample customers and disputes into an empty database
	SeedSampleData bool `yaml:"seed_sample_data" example:"true"`
}

type Dialogue struct {
	// Simulated agent typing delay in milliseconds
	TypingDelayMs int `yaml:"typing_delay_ms" example:"1000"`
	// Display name of the virtual agent
	AgentName string `yaml:"agent_name" example:"Claims Assistant"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":5050"
	}
	if result.Server.AllowedOrigin == "" {
		result.Server.AllowedOrigin = "http://localhost:3000"
	}
	if result.Ollama.BaseURL == "" {
		result.Ollama.BaseURL = "http://localhost:11434"
	}
	if result.Ollama.Model == "" {
		result.Ollama.Model = "mistral"
	}
	if result.Store.Dir == "" {
		result.Store.Dir = "data/claims"
	}
	if result.Dialogue.TypingDelayMs == 0 {
		result.Dialogue.TypingDelayMs = 1000
	}
	if result.Dialogue.AgentName == "" {
		result.Dialogue.AgentName = "Claims Assistant"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
