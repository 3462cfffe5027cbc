package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "test-secret-key-at-least-32-chars!"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: "sqlite"
  path: "/tmp/pulselink-test.db"
  wal_mode: true
  busy_timeout: 5
api:
  host: "127.0.0.1"
  port: 8081
security:
  jwt:
    secret: "`+testSecret+`"
mqtt:
  enabled: true
  broker:
    host: "broker.local"
  topic_prefix: "pl"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/pulselink-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.API.Port != 8081 {
		t.Errorf("API.Port = %d, want 8081", cfg.API.Port)
	}
	if cfg.MQTT.Broker.Host != "broker.local" || cfg.MQTT.TopicPrefix != "pl" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	// Defaults survive a partial file.
	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT.QoS = %d, want default 1", cfg.MQTT.QoS)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "/tmp/from-file.db"
`)
	t.Setenv("PULSELINK_JWT_SECRET", testSecret)
	t.Setenv("PULSELINK_DATABASE_PATH", "/tmp/from-env.db")
	t.Setenv("PULSELINK_API_PORT", "9090")
	t.Setenv("PULSELINK_MQTT_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/tmp/from-env.db" {
		t.Errorf("Database.Path = %q, want env value", cfg.Database.Path)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.Security.JWT.Secret != testSecret {
		t.Error("JWT secret not taken from environment")
	}
}

func TestLoad_BadEnvNumber(t *testing.T) {
	path := writeConfig(t, "security:\n  jwt:\n    secret: \""+testSecret+"\"\n")
	t.Setenv("PULSELINK_API_PORT", "eighty")

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for non-numeric port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Security.JWT.Secret = "" }, "security.jwt.secret is required"},
		{"short secret", func(c *Config) { c.Security.JWT.Secret = "short" }, "at least 32 characters"},
		{"bad driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver must be sqlite or mysql"},
		{"mysql without dsn", func(c *Config) { c.Database.Driver = "mysql" }, "database.dsn is required"},
		{"bad port", func(c *Config) { c.API.Port = 70000 }, "api.port"},
		{"bad qos when enabled", func(c *Config) { c.MQTT.Enabled = true; c.MQTT.QoS = 3 }, "mqtt.qos"},
		{"bad qos ignored when disabled", func(c *Config) { c.MQTT.QoS = 3 }, ""},
		{"influx without url", func(c *Config) { c.InfluxDB.Enabled = true; c.InfluxDB.Org = "o" }, "influxdb.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Security.JWT.Secret = testSecret
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Driver = "oracle"
	cfg.API.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if got := strings.Count(err.Error(), ";"); got < 2 {
		t.Errorf("Validate() joined %d errors, want at least 3: %v", got+1, err)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("PULSELINK_CONFIG", "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Errorf("ResolvePath(\"\") = %q, want %q", got, DefaultPath)
	}

	t.Setenv("PULSELINK_CONFIG", "/etc/pulselink.yaml")
	if got := ResolvePath(""); got != "/etc/pulselink.yaml" {
		t.Errorf("ResolvePath() = %q, want env value", got)
	}
	if got := ResolvePath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("ResolvePath() = %q, want flag value", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadEnvFile(missing) error = %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PULSELINK_TEST_DOTENV=loaded\n"), 0600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Setenv("PULSELINK_TEST_DOTENV", "")
	os.Unsetenv("PULSELINK_TEST_DOTENV")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("PULSELINK_TEST_DOTENV"); got != "loaded" {
		t.Errorf("PULSELINK_TEST_DOTENV = %q, want loaded", got)
	}
}
