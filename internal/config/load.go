package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for namespaced environment variables,
// e.g. YOUCHAT_SERVER_PORT overrides server.port.
const envPrefix = "YOUCHAT"

// Load reads configuration from environment variables and validates it.
// Namespaced YOUCHAT_* variables take precedence; the bare names documented
// in the README (API_KEY, PORT, DATABASE_URL, JWT_SECRET) are bound as
// fallbacks. Returns a populated Config or an error if validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bare environment names kept for operational compatibility.
	// viper.BindEnv only errors on an empty key, so errors are ignored here.
	_ = v.BindEnv("llm.gemini_api_key", "YOUCHAT_LLM_GEMINI_API_KEY", "API_KEY")
	_ = v.BindEnv("server.port", "YOUCHAT_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.url", "YOUCHAT_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "YOUCHAT_AUTH_JWT_SECRET", "JWT_SECRET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the default value for every optional setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("auth.bcrypt_cost", 0)                        // 0 means bcrypt.DefaultCost

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.stuck_task_age_minutes", 30)
}
