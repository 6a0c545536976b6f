package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chaton.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		wantHost string
		wantPort int
		wantHTTP int
		wantLog  string
	}{
		{
			name: "full config",
			content: "[Server]\nHost = 0.0.0.0\nPort = 12345\nHTTPPort = 8080\n" +
				"[Logging]\nLogFile = chaton.log\n",
			wantHost: "0.0.0.0",
			wantPort: 12345,
			wantHTTP: 8080,
			wantLog:  "chaton.log",
		},
		{
			name: "no http port",
			content: "[Server]\nHost = 127.0.0.1\nPort = 2000\n" +
				"[Logging]\nLogFile = /var/log/chaton.log\n",
			wantHost: "127.0.0.1",
			wantPort: 2000,
			wantHTTP: 0,
			wantLog:  "/var/log/chaton.log",
		},
		{
			name:    "missing host",
			content: "[Server]\nPort = 12345\n[Logging]\nLogFile = chaton.log\n",
			wantErr: true,
		},
		{
			name:    "missing log file",
			content: "[Server]\nHost = 0.0.0.0\nPort = 12345\n",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			content: "[Server]\nHost = 0.0.0.0\nPort = chat\n[Logging]\nLogFile = chaton.log\n",
			wantErr: true,
		},
		{
			name:    "privileged port",
			content: "[Server]\nHost = 0.0.0.0\nPort = 80\n[Logging]\nLogFile = chaton.log\n",
			wantErr: true,
		},
		{
			name: "http port collides with chat port",
			content: "[Server]\nHost = 0.0.0.0\nPort = 12345\nHTTPPort = 12345\n" +
				"[Logging]\nLogFile = chaton.log\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Host != tt.wantHost || cfg.Port != tt.wantPort || cfg.HTTPPort != tt.wantHTTP || cfg.LogFile != tt.wantLog {
				t.Errorf("got (%q, %d, %d, %q), want (%q, %d, %d, %q)",
					cfg.Host, cfg.Port, cfg.HTTPPort, cfg.LogFile,
					tt.wantHost, tt.wantPort, tt.wantHTTP, tt.wantLog)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestAddr(t *testing.T) {
	cfg := &AppConfig{Host: "127.0.0.1", Port: 12345}
	if got, want := cfg.Addr(), "127.0.0.1:12345"; got != want {
		t.Errorf("Addr() = %q, want %q", got, want)
	}
}
