package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Storage.DataDir != "data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "data")
	}
	if cfg.Upload.MaxConcurrent != 5 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 5)
	}
	if cfg.Upload.MaxFileSize != 26214400 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 26214400)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
	if cfg.Database.SinkEnabled() {
		t.Error("Database.SinkEnabled() = true without DATABASE_URL")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("UPLOAD_MAX_CONCURRENT", "10")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxConcurrent != 10 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 10)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/alttest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want alt env value", cfg.Database.URL)
	}
	if !cfg.Database.SinkEnabled() {
		t.Error("Database.SinkEnabled() = false with DB_URL set")
	}
}

func TestLoad_APIKeyList(t *testing.T) {
	t.Setenv("REQUIRE_API_KEY", "true")
	t.Setenv("API_KEYS", "key-one, key-two ,key-three")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"key-one", "key-two", "key-three"}
	if len(cfg.Security.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Security.APIKeys, want)
	}
	for i, k := range want {
		if cfg.Security.APIKeys[i] != k {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Security.APIKeys[i], k)
		}
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantMsg string
	}{
		{
			name:    "bad port",
			envs:    map[string]string{"SERVER_PORT": "99999"},
			wantMsg: "SERVER_PORT",
		},
		{
			name:    "auth without keys",
			envs:    map[string]string{"REQUIRE_API_KEY": "true"},
			wantMsg: "API_KEYS",
		},
		{
			name:    "bad log level",
			envs:    map[string]string{"LOG_LEVEL": "verbose"},
			wantMsg: "LOG_LEVEL",
		},
		{
			name: "pool bounds inverted",
			envs: map[string]string{
				"DATABASE_URL": "postgres://localhost/test",
				"DB_MAX_CONNS": "1",
				"DB_MIN_CONNS": "5",
			},
			wantMsg: "DB_MAX_CONNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() succeeded, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
