package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("FRONTEND_BASE_URL", "https://vosa.example.edu/")

	c := Load()
	if c.DBDriver != DriverSQLite {
		t.Fatalf("DBDriver = %q, want sqlite", c.DBDriver)
	}
	if c.SessionTTL != 168*time.Hour {
		t.Fatalf("SessionTTL = %v", c.SessionTTL)
	}
	if c.FrontendBaseURL != "https://vosa.example.edu" {
		t.Fatalf("FrontendBaseURL not trimmed: %q", c.FrontendBaseURL)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_IntOverrides(t *testing.T) {
	t.Setenv("MAIL_WORKERS", "4")
	t.Setenv("REDIS_DB", "not-a-number")

	c := Load()
	if c.MailWorkers != 4 {
		t.Fatalf("MailWorkers = %d, want 4", c.MailWorkers)
	}
	if c.RedisDB != 0 {
		t.Fatalf("RedisDB = %d, want fallback 0", c.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "unsupported DB_DRIVER"},
		{"mysql missing host", func(c *Config) { c.DBDriver = DriverMySQL; c.MySQLHost = "" }, "missing MySQL config"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "APP_TIMEZONE"},
		{"no workers", func(c *Config) { c.MailWorkers = 0 }, "MAIL_WORKERS"},
		{"no upload limit", func(c *Config) { c.UploadMaxBytes = 0 }, "UPLOAD_MAX_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Load()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDSNs(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "vms", SQLitePath: "dev.db"}
	if got := c.MySQLDSN(); !strings.HasPrefix(got, "u:p@tcp(db:3306)/vms?parseTime=true") {
		t.Fatalf("MySQLDSN = %q", got)
	}
	if got := c.SQLiteDSN(); !strings.Contains(got, "_journal_mode=WAL") || !strings.HasPrefix(got, "file:dev.db") {
		t.Fatalf("SQLiteDSN = %q", got)
	}
}
