// Package config resolves the crawler's runtime settings from environment
// variables. A Config is built once at startup and passed to consumers.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variable names
const (
	EnvSearchHost       = "ES_SERVER"
	EnvSearchPort       = "ES_SERVER_PORT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvDatabaseHost     = "IMS_HOSTNAME"
	EnvDatabaseUser     = "IMS_USERNAME"
	EnvDatabasePassword = "IMS_PASSWORD"
	EnvDatabaseName     = "IMS_DB_NAME"
	EnvDatabasePort     = "IMS_PORT"
	EnvDatabaseSSLMode  = "IMS_SSLMODE"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvServerHost       = "STATUS_HOST"
	EnvServerPort       = "STATUS_PORT"
)

// Defaults applied when a variable is unset or empty
const (
	DefaultSearchHost   = "localhost"
	DefaultSearchPort   = 4571
	DefaultEnvironment  = "DEVELOPMENT"
	DefaultDatabasePort = 5432
	DefaultSSLMode      = "disable"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultServerHost   = "0.0.0.0"
	DefaultServerPort   = 8080
)

const redactedValue = "****"

// Config represents the complete crawler configuration
type Config struct {
	Environment   string              `json:"environment" validate:"required"`
	Search        SearchConfig        `json:"search"`
	Database      DatabaseConfig      `json:"database"`
	Crawler       CrawlerConfig       `json:"crawler"`
	Server        ServerConfig        `json:"server"`
	Observability ObservabilityConfig `json:"observability"`
}

// SearchConfig holds the search index address
type SearchConfig struct {
	Host string `json:"host" validate:"required"`
	Port int    `json:"port" validate:"min=1,max=65535"`
}

// DatabaseConfig holds the IMS PostgreSQL connection settings.
// Host, User, Password and Name have no default and stay nil when unset.
type DatabaseConfig struct {
	Host     *string `json:"host"`
	User     *string `json:"user"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Port     int     `json:"port" validate:"min=1,max=65535"`
	SSLMode  string  `json:"sslmode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
}

// ServerConfig holds the status HTTP server configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port" validate:"min=1,max=65535"`
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `json:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `json:"log_format" validate:"required,oneof=json console"`
}

// New loads the configuration from the process environment.
func New() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a Config from lookup. The only failure is an integer setting
// that is present but not a base-10 integer.
func Load(lookup LookupFunc) (*Config, error) {
	env := envReader{lookup: lookup}

	searchPort, err := env.getInt(EnvSearchPort, DefaultSearchPort)
	if err != nil {
		return nil, err
	}
	databasePort, err := env.getInt(EnvDatabasePort, DefaultDatabasePort)
	if err != nil {
		return nil, err
	}
	serverPort, err := env.getInt(EnvServerPort, DefaultServerPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment: env.get(EnvEnvironment, DefaultEnvironment),
		Search: SearchConfig{
			Host: env.get(EnvSearchHost, DefaultSearchHost),
			Port: searchPort,
		},
		Database: DatabaseConfig{
			Host:     env.getOptional(EnvDatabaseHost),
			User:     env.getOptional(EnvDatabaseUser),
			Password: env.getOptional(EnvDatabasePassword),
			Name:     env.getOptional(EnvDatabaseName),
			Port:     databasePort,
			SSLMode:  env.get(EnvDatabaseSSLMode, DefaultSSLMode),
		},
		Crawler: CrawlerConfig{
			BaseURL: BaseURLCrawler,
		},
		Server: ServerConfig{
			Host: env.get(EnvServerHost, DefaultServerHost),
			Port: serverPort,
		},
		Observability: ObservabilityConfig{
			LogLevel:  env.get(EnvLogLevel, DefaultLogLevel),
			LogFormat: env.get(EnvLogFormat, DefaultLogFormat),
		},
	}, nil
}

// Validate checks that the loaded values are usable by the crawler's consumers.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}

	if c.IsProduction() {
		if c.Database.Host == nil {
			return fmt.Errorf("database host (%s) is required in production", EnvDatabaseHost)
		}
		if c.Database.User == nil {
			return fmt.Errorf("database user (%s) is required in production", EnvDatabaseUser)
		}
		if c.Database.Name == nil {
			return fmt.Errorf("database name (%s) is required in production", EnvDatabaseName)
		}
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production") || strings.EqualFold(c.Environment, "prod")
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development") || strings.EqualFold(c.Environment, "dev")
}

// Redacted returns a copy of the configuration that is safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if c.Database.Password != nil {
		masked := redactedValue
		out.Database.Password = &masked
	}
	return out
}

// Address returns the search index address as host:port
func (c SearchConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL returns the search index base URL
func (c SearchConfig) URL() string {
	return "http://" + c.Address()
}

// DSN returns the lib/pq key/value connection string. Unset fields are
// omitted so the driver falls back to its PG* environment defaults.
func (c DatabaseConfig) DSN() string {
	parts := make([]string, 0, 6)
	add := func(key string, value *string) {
		if value != nil {
			parts = append(parts, key+"="+quoteDSNValue(*value))
		}
	}

	add("host", c.Host)
	parts = append(parts, "port="+strconv.Itoa(c.Port))
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.Name)
	if c.SSLMode != "" {
		parts = append(parts, "sslmode="+quoteDSNValue(c.SSLMode))
	}

	return strings.Join(parts, " ")
}

// LogString returns a safe string for logging (no password)
func (c DatabaseConfig) LogString() string {
	return fmt.Sprintf("host=%s port=%d database=%s",
		valueOr(c.Host, "<unset>"), c.Port, valueOr(c.Name, "<unset>"))
}

// Address returns the status server listen address
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + escaped + "'"
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
