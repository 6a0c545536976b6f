/*
Package configs is responsible for loading and parsing the application's configuration settings.

The server is started with a single config source argument: the path to an INI
file carrying the listen address and the log file location. The running
environment is read from the ENVIRONMENT variable.
*/
package configs

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// DefaultConfigFile is used when the process is started without a config source argument.
const DefaultConfigFile = "chaton.conf"

// AppConfig contains all configuration parameters required for the server to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Host        string
	Port        int

	// HTTPPort is the listen port for the optional WebSocket bridge.
	// A value of 0 disables the HTTP listener entirely.
	HTTPPort int

	// Logging Settings
	LogFile string
}

// LoadConfig reads and parses the application configuration from the given INI file.
// The expected layout follows the chaton.conf format:
//
//	[Server]
//	Host     = 0.0.0.0
//	Port     = 12345
//	HTTPPort = 8080
//
//	[Logging]
//	LogFile = chaton.log
//
// It performs necessary type conversions and validation and returns a pointer
// to the AppConfig struct and any error encountered.
func LoadConfig(path string) (*AppConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := &AppConfig{}

	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	server := file.Section("Server")

	// Host
	cfg.Host = server.Key("Host").String()
	if cfg.Host == "" {
		return nil, fmt.Errorf("config %q is missing Server.Host", path)
	}

	// Port
	port, err := server.Key("Port").Int()
	if err != nil {
		return nil, fmt.Errorf("invalid Server.Port in %q: %w", path, err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// HTTPPort (optional; 0 keeps the WebSocket bridge off)
	if server.HasKey("HTTPPort") {
		httpPort, err := server.Key("HTTPPort").Int()
		if err != nil {
			return nil, fmt.Errorf("invalid Server.HTTPPort in %q: %w", path, err)
		}
		if httpPort != 0 && (httpPort < 1024 || httpPort > 65535) {
			return nil, fmt.Errorf("HTTP port number %d is outside the recommended range (%d-%d)", httpPort, 1024, 65535)
		}
		if httpPort == cfg.Port {
			return nil, fmt.Errorf("HTTPPort and Port must differ (both %d)", httpPort)
		}
		cfg.HTTPPort = httpPort
	}

	// LogFile
	cfg.LogFile = file.Section("Logging").Key("LogFile").String()
	if cfg.LogFile == "" {
		return nil, fmt.Errorf("config %q is missing Logging.LogFile", path)
	}

	return cfg, nil
}

// Addr returns the host:port pair the chat acceptor binds to.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
