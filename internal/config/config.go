package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth"    validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the state store backend. The file
// backend is suitable only for single-process deployments; the postgres
// backend serializes writers with a store-wide transactional lock.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"      validate:"required,oneof=file postgres"`
	FilePath    string `mapstructure:"file_path"    validate:"required_if=Backend file"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Backend postgres,omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"           validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0,lte=168"`
}

// LLMConfig contains the external content-generation settings. An empty API
// key disables the external generator; lessons are then served from the
// deterministic fallback engine.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
}
