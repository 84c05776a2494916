package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Cards    CardsConfig    `mapstructure:"cards"    validate:"required"`
	Build    BuildConfig    `mapstructure:"build"    validate:"required"`
	Contact  ContactConfig  `mapstructure:"contact"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Supported card store backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
// URL is only required when the postgres backend is selected.
type DatabaseConfig struct {
	Backend                string `mapstructure:"backend"                   validate:"required,oneof=postgres memory"`
	Driver                 string `mapstructure:"driver"                    validate:"required,oneof=pgx postgres"`
	URL                    string `mapstructure:"url"                       validate:"required_if=Backend postgres"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gt=0"`
}

// RedisConfig configures the optional read-through card cache and card event
// publishing. An empty URL disables both.
type RedisConfig struct {
	URL             string `mapstructure:"url"               validate:"omitempty,url"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gt=0"`
	EventsChannel   string `mapstructure:"events_channel"`
}

// AuthConfig contains bearer token settings. Authentication is disabled when
// JWTSecret is empty.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	Issuer               string `mapstructure:"issuer"                 validate:"required"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether bearer authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// CardsConfig contains card lifecycle tuning.
type CardsConfig struct {
	MaxCardNumberAttempts int `mapstructure:"max_card_number_attempts" validate:"gt=0,lte=100"`
}

// BuildConfig describes the deployed build.
type BuildConfig struct {
	Version string `mapstructure:"version" validate:"required"`
}

// ContactConfig is published verbatim by the contact-info endpoint.
type ContactConfig struct {
	Message        string            `mapstructure:"message"         json:"message"`
	ContactDetails map[string]string `mapstructure:"contact_details" json:"contactDetails"`
	OnCallSupport  []string          `mapstructure:"on_call_support" json:"onCallSupport"`
}
