package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Blogs    BlogsConfig    `mapstructure:"blogs"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                int    `mapstructure:"port"                  validate:"required,gt=0,lt=65536"`
	LogLevel            string `mapstructure:"log_level"             validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is ignored by the memory driver; for sqlite it is a file path.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	URL    string `mapstructure:"url"    validate:"required_unless=Driver memory"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes of 0 issues tokens without an expiry claim.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
	BcryptCost           int `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// BlogsConfig holds catalog behaviour switches.
type BlogsConfig struct {
	// UpdatePolicy decides who may replace a blog's fields:
	// "open" lets anyone update, "owner" requires the authenticated owner.
	UpdatePolicy string `mapstructure:"update_policy" validate:"required,oneof=open owner"`
}

// Update policy values for BlogsConfig.UpdatePolicy.
const (
	UpdatePolicyOpen  = "open"
	UpdatePolicyOwner = "owner"
)
