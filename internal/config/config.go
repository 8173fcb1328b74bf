package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppPort  string
	Debug    bool
	Timezone string

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs     int
	AnalyticsTTLSecs int
	SessionTTL       time.Duration

	FrontendBaseURL string

	SendgridAPIKey string
	MailFrom       string
	MailFromName   string
	MailWorkers    int
	MailQueueSize  int

	UploadDir      string
	UploadMaxBytes int64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the process environment. A .env file in the working directory,
// if present, fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		Debug:    strings.EqualFold(getenv("APP_DEBUG", "false"), "true"),
		Timezone: getenv("APP_TIMEZONE", "UTC"),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		SQLitePath: getenv("SQLITE_PATH", "vms.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "vms"),
		MySQLUser: getenv("MYSQL_USER", "vms"),
		MySQLPass: getenv("MYSQL_PASS", "vms"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs:     getint("IDEMPOTENCY_TTL_SECONDS", 300),
		AnalyticsTTLSecs: getint("ANALYTICS_CACHE_TTL_SECONDS", 60),
		SessionTTL:       time.Duration(getint("SESSION_TTL_HOURS", 168)) * time.Hour,

		FrontendBaseURL: strings.TrimRight(getenv("FRONTEND_BASE_URL", "http://localhost:5173"), "/"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenv("MAIL_FROM", "noreply@localhost"),
		MailFromName:   getenv("MAIL_FROM_NAME", "VOSA"),
		MailWorkers:    getint("MAIL_WORKERS", 2),
		MailQueueSize:  getint("MAIL_QUEUE_SIZE", 100),

		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes: int64(getint("UPLOAD_MAX_BYTES", 10<<20)),
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.MailWorkers < 1 || c.MailQueueSize < 1 {
		return errors.New("MAIL_WORKERS and MAIL_QUEUE_SIZE must be positive")
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	return nil
}

// Location returns the timezone used for semester bucketing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// SQLiteDSN enables WAL journaling, normal sync and foreign keys on every connection.
func (c *Config) SQLiteDSN() string {
	return "file:" + c.SQLitePath + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000"
}
