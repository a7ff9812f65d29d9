package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"cargo/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBDSN         string
	DBAutoMigrate bool

	LogLevel string

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers     []string
	KafkaLedgerTopic string

	LedgerRelayBatch  int
	LedgerRelaySettle time.Duration

	AdminEmail    string
	AdminPassword string
	AdminFullName string
	AdminPhone    string

	ShutdownTimeout time.Duration
}

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

// LoadConfig reads path (a missing file is fine) into the process environment
// without overriding variables already set, then builds the Config.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return ConfigFromLookup(os.LookupEnv)
}

// ConfigFromLookup builds the Config from lookup, applying defaults.
func ConfigFromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errList []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(get(key, def))
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	integer := func(key, def string) int {
		n, err := strconv.Atoi(get(key, def))
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}
	boolean := func(key, def string) bool {
		b, err := strconv.ParseBool(get(key, def))
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return b
	}

	cfg := Config{
		HTTPPort:          get("HTTP_PORT", "8080"),
		DBDriver:          strings.ToLower(get("DB_DRIVER", postgres.DriverPostgres)),
		DBHost:            get("DB_HOST", "localhost"),
		DBPort:            get("DB_PORT", "5432"),
		DBUser:            get("DB_USER", "postgres"),
		DBPassword:        get("DB_PASSWORD", ""),
		DBName:            get("DB_NAME", "cargo"),
		DBSslMode:         get("DB_SSLMODE", "disable"),
		DBDSN:             get("DB_DSN", ""),
		DBAutoMigrate:     boolean("DB_AUTO_MIGRATE", "true"),
		LogLevel:          get("LOG_LEVEL", "info"),
		JWTSecret:         get("JWT_SECRET", ""),
		JWTTTL:            duration("JWT_TTL", "24h"),
		KafkaBrokers:      splitList(get("KAFKA_BROKERS", "")),
		KafkaLedgerTopic:  get("KAFKA_LEDGER_TOPIC", "order-status-ledger"),
		LedgerRelayBatch:  integer("LEDGER_RELAY_BATCH", "100"),
		LedgerRelaySettle: duration("LEDGER_RELAY_SETTLE", "2s"),
		AdminEmail:        get("ADMIN_EMAIL", ""),
		AdminPassword:     get("ADMIN_PASSWORD", ""),
		AdminFullName:     get("ADMIN_FULL_NAME", "Super Administrator"),
		AdminPhone:        get("ADMIN_PHONE", "+250780000000"),
		ShutdownTimeout:   duration("SHUTDOWN_TIMEOUT", "10s"),
	}

	if cfg.JWTSecret == "" {
		errList = append(errList, ErrJWTSecretIsRequired)
	}
	if cfg.DBDriver != postgres.DriverPostgres && cfg.DBDriver != postgres.DriverSQLite {
		errList = append(errList, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver))
	}
	if cfg.DBDriver == postgres.DriverSQLite && cfg.DBDSN == "" {
		cfg.DBDSN = "cargo.db"
	}
	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns DB_DSN when set, otherwise a PostgreSQL URL built from the
// DB_* parts.
func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) RelayEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c Config) BootstrapAdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
