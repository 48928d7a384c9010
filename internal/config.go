package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	apperrors "agent-lab/errors"
)

type Config struct {
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterModel   string        `env:"OPENROUTER_MODEL,default=meta-llama/llama-3.1-8b-instruct:free"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL,default=https://openrouter.ai/api/v1" validate:"url"`
	AgentEnabled      bool          `env:"AGENT_ENABLED,default=true"`
	AgentTemperature  float64       `env:"AGENT_TEMPERATURE,default=0.7" validate:"gte=0,lte=2"`
	AgentMaxTokens    int           `env:"AGENT_MAX_TOKENS,default=2000" validate:"gt=0"`
	AgentTimeout      time.Duration `env:"AGENT_TIMEOUT,default=60s"`

	VaultDir          string        `env:"VAULT_DIR,default=vault"`
	PollInterval      time.Duration `env:"POLL_INTERVAL,default=2s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`

	WhatsAppProfileDir   string        `env:"WHATSAPP_PROFILE_DIR,default=.whatsapp-profile"`
	WhatsAppHeadless     bool          `env:"WHATSAPP_HEADLESS,default=false"`
	WhatsAppPollInterval time.Duration `env:"WHATSAPP_POLL_INTERVAL,default=5s"`
}

// Load reads .env (when present), the process environment, and
// validates the result. A missing API key is only an error when the
// agent is enabled; heuristic-only mode needs no credentials.
func Load() (Config, error) {
	// .env is optional: the environment itself may carry everything.
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}

	if config.AgentEnabled && config.OpenRouterAPIKey == "" {
		return Config{}, apperrors.ErrMissingAPIKey
	}
	return config, nil
}
