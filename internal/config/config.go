package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// DefaultBadComments is the deny-list shipped out of the box. The single entry
// is a known-bad script comment that must never surface in results for the
// exclusion agent.
const DefaultBadComments = "vc-251-08.03.19-MDR-AUG-V2J-x1-q18"

// DefaultExclusionAgent is the agent code the deny-list applies to.
const DefaultExclusionAgent = "MDR"

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	// RouterOS REST API endpoint for the hotspot device. Leave the address
	// empty to run local-only; remote sourcing then fails with a typed error.
	RouterOSAddress     string
	RouterOSUser        string
	RouterOSPassword    string
	RouterOSInsecureTLS bool
	RouterOSTimeout     time.Duration

	// BadComments is the deny-list of script comment values; ExclusionAgent
	// is the agent code the deny-list is scoped to.
	BadComments    []string
	ExclusionAgent string

	MetricsEnabled  bool
	MetricsExporter string
	MetricsEndpoint string

	BootstrapAdmin bool
}

// Module provides the configuration to the fx graph.
var Module = fx.Provide(Load)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "salesledger"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "salesledger"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),

		RouterOSAddress:     strings.TrimSpace(getenv("ROUTEROS_ADDRESS", "")),
		RouterOSUser:        strings.TrimSpace(getenv("ROUTEROS_USER", "")),
		RouterOSPassword:    getenv("ROUTEROS_PASSWORD", ""),
		RouterOSInsecureTLS: getenvBool("ROUTEROS_INSECURE_TLS", false),
		RouterOSTimeout:     time.Duration(getenvInt("ROUTEROS_TIMEOUT_SECONDS", 15)) * time.Second,

		BadComments:    splitList(getenv("SALES_BAD_COMMENTS", DefaultBadComments)),
		ExclusionAgent: getenv("SALES_EXCLUSION_AGENT", DefaultExclusionAgent),

		MetricsEnabled:  getenvBool("METRICS_ENABLED", false),
		MetricsExporter: strings.ToLower(getenv("METRICS_EXPORTER", "grpc")),
		MetricsEndpoint: strings.TrimSpace(getenv("METRICS_ENDPOINT", "localhost:4317")),

		BootstrapAdmin: getenvBool("BOOTSTRAP_ADMIN", true),
	}
}

// RouterOSConfigured reports whether the device gateway has credentials.
func (c Config) RouterOSConfigured() bool {
	return c.RouterOSAddress != "" && c.RouterOSUser != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
