package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "postgres", DSN: "postgres://localhost/catalog"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "http.port") {
		t.Errorf("error should name the yaml field: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "valkey"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DriverRequirements(t *testing.T) {
	tests := []struct {
		name    string
		db      DatabaseConfig
		wantErr string
	}{
		{"sql without dsn", DatabaseConfig{Driver: "mysql"}, "database.dsn is required for driver mysql"},
		{"sqlite with dsn", DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, ""},
		{"redis without addrs", DatabaseConfig{Driver: "redis"}, "database.addrs is required for driver redis"},
		{"redis with addrs", DatabaseConfig{Driver: "redis", Addrs: []string{"localhost:6379"}}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database = tc.db
			cfg.ApplyDefaults()

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("got %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_SearchBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultPageSize = 500
	cfg.Search.SuggestionLimit = 50
	cfg.Search.MaxPerCategory = 500

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range search settings")
	}
	for _, field := range []string{"search.default_page_size", "search.suggestion_limit", "search.max_per_category"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s: %v", field, err)
		}
	}
}

func TestValidate_LogLevelAndKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid log level")
	}

	cfg = validConfig()
	cfg.Auth.APIKeys = []string{"key-1", ""}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected default driver postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.KeyPrefix != "tripsearch:" {
		t.Errorf("expected default key prefix, got %q", cfg.Database.KeyPrefix)
	}
	if cfg.Search.FetchTimeout() != 5*time.Second {
		t.Errorf("expected 5s fetch timeout, got %v", cfg.Search.FetchTimeout())
	}
	if cfg.Search.MaxPerCategory != 100 || cfg.Search.DefaultPageSize != 20 || cfg.Search.SuggestionLimit != 5 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "redis", KeyPrefix: "cat:"},
		Search:   SearchConfig{FetchTimeoutMS: 1500, MaxPerCategory: 40},
	}
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" || cfg.Database.KeyPrefix != "cat:" {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Search.FetchTimeout() != 1500*time.Millisecond || cfg.Search.MaxPerCategory != 40 {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TRIPSEARCH_TEST_DSN", "postgres://db/catalog")
	t.Setenv("TRIPSEARCH_TEST_EMPTY", "")

	in := "a: ${TRIPSEARCH_TEST_DSN}\nb: ${TRIPSEARCH_TEST_EMPTY:-fallback}\nc: ${TRIPSEARCH_TEST_UNSET}\n"
	want := "a: postgres://db/catalog\nb: fallback\nc: \n"
	if got := string(expandEnvVars([]byte(in))); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	t.Setenv("TRIPSEARCH_TEST_PORT", "9090")

	data := []byte(`
http:
  port: ${TRIPSEARCH_TEST_PORT}
database:
  driver: sqlite
  dsn: ":memory:"
search:
  fetch_timeout_ms: 750
auth:
  api_keys: ["k1", "k2"]
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Search.FetchTimeout() != 750*time.Millisecond {
		t.Errorf("fetch timeout = %v", cfg.Search.FetchTimeout())
	}
	if len(cfg.Auth.APIKeys) != 2 {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := parse([]byte("http: [")); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := parse([]byte("http:\n  port: 0\ndatabase:\n  dsn: x\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_ReadsDotEnvAndConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yamlBody := "http:\n  port: 8181\ndatabase:\n  driver: sqlite\n  dsn: ${TRIPSEARCH_DOTENV_DSN}\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TRIPSEARCH_DOTENV_DSN=file:from-dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// godotenv does not override existing variables; make sure it is unset.
	t.Setenv("TRIPSEARCH_DOTENV_DSN", "")
	os.Unsetenv("TRIPSEARCH_DOTENV_DSN")

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.DSN != "file:from-dotenv.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("got %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("got %q, want prod", got)
	}
}
