package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("BACKUP_S3_BUCKET", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Store.Driver != DriverSQLite {
		t.Fatalf("expected sqlite default, got %q", cfg.Store.Driver)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.WhatsApp.Enabled() || cfg.Backup.Enabled() {
		t.Fatal("optional integrations must default to disabled")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestLoad_BadBool(t *testing.T) {
	t.Setenv("BACKUP_S3_PATH_STYLE", "sometimes")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected boolean parse error")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:    ServerConfig{Port: "8080"},
			Store:     StoreConfig{Driver: DriverMemory},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid memory", mutate: func(*Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, wantErr: "POSTGRES_DSN"},
		{name: "sheets without credentials", mutate: func(c *Config) { c.Store.Driver = DriverSheets }, wantErr: "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{name: "whatsapp without phone", mutate: func(c *Config) { c.WhatsApp.AccessToken = "tok" }, wantErr: "WHATSAPP_PHONE_NUMBER_ID"},
		{name: "backup without schedule", mutate: func(c *Config) { c.Backup.Bucket = "b" }, wantErr: "BACKUP_CRON_SCHEDULE"},
		{name: "missing timezone", mutate: func(c *Config) { c.Reporting.Timezone = "" }, wantErr: "TIMEZONE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tc.wantErr, err)
			}
		})
	}
}
