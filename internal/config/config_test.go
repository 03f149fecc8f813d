package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/analysis-support/internal/locale"
)

var envKeys = []string{
	"ANALYSIS_TRANSPORT",
	"ANALYSIS_HTTP_ADDR",
	"ANALYSIS_STORE",
	"ANALYSIS_SQLITE_DSN",
	"ANALYSIS_LOCALE",
	"ANALYSIS_LOG_LEVEL",
	"ANALYSIS_MECE_POLICY",
}

// clearEnv blanks every ANALYSIS_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
	if cfg.Transport != TransportStdio {
		t.Errorf("Transport = %s, want stdio", cfg.Transport)
	}
	if cfg.Locale != locale.Japanese {
		t.Errorf("Locale = %s, want ja", cfg.Locale)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYSIS_TRANSPORT", "HTTP")
	t.Setenv("ANALYSIS_HTTP_ADDR", ":9999")
	t.Setenv("ANALYSIS_STORE", "sqlite")
	t.Setenv("ANALYSIS_SQLITE_DSN", "/tmp/analysis.db")
	t.Setenv("ANALYSIS_LOCALE", "en-US")
	t.Setenv("ANALYSIS_LOG_LEVEL", "DEBUG")
	t.Setenv("ANALYSIS_MECE_POLICY", "/etc/mece.yaml")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Transport:  TransportHTTP,
		HTTPAddr:   ":9999",
		Store:      StoreSQLite,
		SQLiteDSN:  "/tmp/analysis.db",
		Locale:     locale.English,
		LogLevel:   "debug",
		MECEPolicy: "/etc/mece.yaml",
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
	lvl, err := cfg.SlogLevel()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want DEBUG", lvl, err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even empty.
	os.Unsetenv("ANALYSIS_STORE")
	os.Unsetenv("ANALYSIS_LOCALE")
	t.Cleanup(func() {
		os.Unsetenv("ANALYSIS_STORE")
		os.Unsetenv("ANALYSIS_LOCALE")
	})

	path := filepath.Join(t.TempDir(), ".env")
	body := "ANALYSIS_STORE=sqlite\nANALYSIS_LOCALE=en\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("Store = %s, want sqlite", cfg.Store)
	}
	if cfg.Locale != locale.English {
		t.Errorf("Locale = %s, want en", cfg.Locale)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		env, value, want string
	}{
		{"ANALYSIS_TRANSPORT", "grpc", "unsupported transport"},
		{"ANALYSIS_STORE", "redis", "unsupported store"},
		{"ANALYSIS_LOCALE", "fr", "ANALYSIS_LOCALE"},
		{"ANALYSIS_LOG_LEVEL", "loud", "unsupported log level"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := Load(missingEnvFile(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidate_HTTPNeedsAddress(t *testing.T) {
	cfg := Default()
	cfg.Transport = TransportHTTP
	cfg.HTTPAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for http transport without address")
	}
}
