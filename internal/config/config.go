package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// RecipientSource selects where the batch pipeline reads delivery targets from.
const (
	// RecipientSourceTable reads all recipients from the destinatarios table.
	RecipientSourceTable = "table-query"
	// RecipientSourceSingle sends to the single configured address.
	RecipientSourceSingle = "single-address"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// mail submission, the Telegram bot, the report pipeline, and graceful
// shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":3000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// Batch runs happen synchronously inside a request, so this must cover a full run.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DB_USER" env-default:"postgres" yaml:"username"`
		// Password for database authentication
		Password string `env:"DB_PASSWORD" env-default:"" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DB_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DB_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DB_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DB_NAME" env-default:"videojuegos" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DB_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DB_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Email contains the SMTP submission settings used for report delivery
	Email struct {
		// Host is the SMTP server hostname
		Host string `env:"EMAIL_HOST" env-default:"smtp.gmail.com" yaml:"host"`
		// Port is the SMTP submission port
		Port int `env:"EMAIL_PORT" env-default:"587" yaml:"port"`
		// User is the account reports are sent from
		User string `env:"EMAIL_USER" env-default:"" yaml:"user"`
		// Password is the account password or application token
		Password string `env:"EMAIL_PASS" env-default:"" yaml:"password"`
		// From overrides the sender address; empty means User
		From string `env:"EMAIL_FROM" env-default:"" yaml:"from"`
	} `yaml:"email"`

	// Telegram contains the chat front end settings
	Telegram struct {
		// BotToken authenticates the bot against the Telegram Bot API
		BotToken string `env:"TELEGRAM_BOT_TOKEN" env-default:"" yaml:"botToken"`
	} `yaml:"telegram"`

	// Report contains the batch pipeline settings
	Report struct {
		// QPDFPath is the path or name of the external qpdf executable
		QPDFPath string `env:"QPDF_PATH" env-default:"qpdf" yaml:"qpdfPath"`
		// WorkDir is where transient PDF artifacts are written
		WorkDir string `env:"REPORT_WORK_DIR" env-default:"" yaml:"workDir"`
		// GeoLookup toggles the best-effort geolocation enrichment
		GeoLookup bool `env:"REPORT_GEO_LOOKUP" env-default:"true" yaml:"geoLookup"`
		// RecipientSource selects "table-query" or "single-address" mode
		RecipientSource string `env:"REPORT_RECIPIENT_SOURCE" env-default:"table-query" yaml:"recipientSource"`
		// SingleEmail is the target address in single-address mode
		SingleEmail string `env:"REPORT_SINGLE_EMAIL" env-default:"" yaml:"singleEmail"`
		// SinglePassword is the document password in single-address mode
		SinglePassword string `env:"REPORT_SINGLE_PASSWORD" env-default:"" yaml:"singlePassword"`
	} `yaml:"report"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
